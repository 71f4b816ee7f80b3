package user

import (
	"meetcal/utils"
)

// SessionStore holds the redis-backed session state behind the user
// service: cached auth-token hashes and pending password-reset sessions.
type SessionStore interface {
	CacheAuthToken(userID, tokenHash string) error
	RevokeAuthToken(userID string) error
	SaveResetSession(token string, session utils.ResetSession) error
	GetResetSession(token string) (*utils.ResetSession, error)
	DeleteResetSession(token string) error
}

// redisSessionStore delegates to the shared cache clients.
type redisSessionStore struct{}

func (redisSessionStore) CacheAuthToken(userID, tokenHash string) error {
	return utils.CacheAuthToken(utils.GetAuthCacheClient(), userID, tokenHash)
}

func (redisSessionStore) RevokeAuthToken(userID string) error {
	return utils.RevokeAuthToken(utils.GetAuthCacheClient(), userID)
}

func (redisSessionStore) SaveResetSession(token string, session utils.ResetSession) error {
	return utils.SaveResetSession(utils.GetResetCacheClient(), token, session)
}

func (redisSessionStore) GetResetSession(token string) (*utils.ResetSession, error) {
	return utils.GetResetSession(utils.GetResetCacheClient(), token)
}

func (redisSessionStore) DeleteResetSession(token string) error {
	return utils.DeleteResetSession(utils.GetResetCacheClient(), token)
}

func (s *DefaultUserService) sessions() SessionStore {
	if s.Sessions != nil {
		return s.Sessions
	}
	return redisSessionStore{}
}
