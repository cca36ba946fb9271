package redis

import "fmt"

// Key prefix for all stored data
const keyPrefix = "gogame"

// accountKey returns the Redis key for a UserAccount
func accountKey(login string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, login)
}
