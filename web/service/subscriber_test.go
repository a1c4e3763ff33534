package service

import (
	"testing"

	"medblog/database"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeIdempotent(t *testing.T) {
	setup()
	defer teardown()

	service := SubscriberService{}

	subscriber, created, err := service.Subscribe("reader@example.com")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "reader@example.com", subscriber.Email)

	// Subscribing again is a success that creates nothing
	again, created, err := service.Subscribe("reader@example.com")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, subscriber.Id, again.Id)

	count, err := service.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubscriberListAndDelete(t *testing.T) {
	setup()
	defer teardown()

	service := SubscriberService{}

	_, _, err := service.Subscribe("a@example.com")
	assert.NoError(t, err)
	second, _, err := service.Subscribe("b@example.com")
	assert.NoError(t, err)

	subscribers, err := service.List()
	assert.NoError(t, err)
	assert.Len(t, subscribers, 2)

	assert.NoError(t, service.Delete(second.Id))

	subscribers, err = service.List()
	assert.NoError(t, err)
	assert.Len(t, subscribers, 1)
	assert.Equal(t, "a@example.com", subscribers[0].Email)

	err = service.Delete(second.Id)
	assert.True(t, database.IsNotFound(err))
}
