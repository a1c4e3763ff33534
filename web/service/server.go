package service

import (
	"time"

	"medblog/database"
	"medblog/database/model"
	"medblog/logger"
	"medblog/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// ServerService assembles the admin dashboard status snapshot.
type ServerService struct {
	subscriberService SubscriberService
	feedbackService   FeedbackService
}

// GetContentStats counts the stored content.
func (s *ServerService) GetContentStats() (*entity.ContentStats, error) {
	db := database.GetDB()
	stats := &entity.ContentStats{}

	if err := db.Model(&model.Post{}).Count(&stats.Posts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Post{}).Where("published = ?", true).Count(&stats.Published).Error; err != nil {
		return nil, err
	}
	row := db.Model(&model.Post{}).Select("COALESCE(SUM(views), 0)").Row()
	if err := row.Scan(&stats.Views); err != nil {
		return nil, err
	}

	var err error
	if stats.Subscribers, err = s.subscriberService.Count(); err != nil {
		return nil, err
	}
	if stats.Feedback, err = s.feedbackService.Count(); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetStatus samples the host and combines it with the content counters.
// Individual probe failures degrade to zero values instead of failing
// the whole snapshot.
func (s *ServerService) GetStatus() *entity.Status {
	status := &entity.Status{T: time.Now()}

	if percents, err := cpu.Percent(0, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}
	if cores, err := cpu.Counts(false); err != nil {
		logger.Warning("get cpu cores failed:", err)
	} else {
		status.CpuCores = cores
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	if diskInfo, err := disk.Usage("/"); err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	if uptime, err := host.Uptime(); err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = uptime
	}

	if avg, err := load.Avg(); err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avg.Load1, avg.Load5, avg.Load15}
	}

	if stats, err := s.GetContentStats(); err != nil {
		logger.Warning("get content stats failed:", err)
	} else {
		status.Content = *stats
	}

	return status
}
