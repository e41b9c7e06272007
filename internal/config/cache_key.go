package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session
func (r *CacheKeyStruct) StudentSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// WordbookItemsKey returns the cache key for a wordbook's cached word list
func (r *CacheKeyStruct) WordbookItemsKey(wordbookID string) string {
	return fmt.Sprintf("wordbook:%s:items", wordbookID)
}

// WordbookLeaderboardKey returns the sorted-set key for a wordbook's game leaderboard
func (r *CacheKeyStruct) WordbookLeaderboardKey(wordbookID string) string {
	return fmt.Sprintf("wordbook:%s:leaderboard", wordbookID)
}

// AcademyNotifyChannel returns the Redis PubSub channel for an academy's announcements
func (r *CacheKeyStruct) AcademyNotifyChannel(academyID int) string {
	return fmt.Sprintf("academy:%d:notify", academyID)
}

var CacheKey = NewCacheKeyStruct()
