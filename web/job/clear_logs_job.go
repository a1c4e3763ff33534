package job

import (
	"os"

	"medblog/logger"
)

// ClearLogsJob truncates the file log backend so it does not grow
// without bound.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

// Run is the cron entry point.
func (j *ClearLogsJob) Run() {
	if err := os.Truncate(logger.LogFilePath(), 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
