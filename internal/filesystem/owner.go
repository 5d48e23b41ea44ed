package filesystem

import (
	"os"
	"os/user"
	"strconv"
	"sync"

	"github.com/IvanShishkin/webtrail/pkg/models"
	"go.uber.org/zap"
)

// LookupFunc maps a numeric uid to an account name
type LookupFunc func(uid string) (string, error)

// OwnerResolver maps file uids to account names, caching lookups
type OwnerResolver struct {
	logger *zap.Logger
	lookup LookupFunc
	origin string

	mu    sync.RWMutex
	names map[uint32]string
}

// NewOwnerResolver creates a resolver backed by os/user
func NewOwnerResolver(logger *zap.Logger) *OwnerResolver {
	return NewOwnerResolverWithLookup(logger, func(uid string) (string, error) {
		u, err := user.LookupId(uid)
		if err != nil {
			return "", err
		}
		return u.Username, nil
	})
}

// NewOwnerResolverWithLookup creates a resolver with a custom lookup
func NewOwnerResolverWithLookup(logger *zap.Logger, lookup LookupFunc) *OwnerResolver {
	origin, err := os.Hostname()
	if err != nil {
		origin = "localhost"
	}
	return &OwnerResolver{
		logger: logger,
		lookup: lookup,
		origin: origin,
		names:  make(map[uint32]string),
	}
}

// Resolve builds the Owner for a file. Unknown uids are attributed to the
// superuser account name, but keep their own uid and gid.
func (r *OwnerResolver) Resolve(uid, gid uint32) models.Owner {
	accountType := models.AccountRegular
	if uid == 0 {
		accountType = models.AccountAdmin
	}
	return models.Owner{
		Name:        r.name(uid),
		AccountType: accountType,
		Origin:      r.origin,
		UID:         uid,
		GID:         gid,
	}
}

func (r *OwnerResolver) name(uid uint32) string {
	r.mu.RLock()
	name, ok := r.names[uid]
	r.mu.RUnlock()
	if ok {
		return name
	}

	name, err := r.lookup(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		r.logger.Debug("Unknown uid, falling back to superuser", zap.Uint32("uid", uid), zap.Error(err))
		name, err = r.lookup("0")
		if err != nil {
			name = "root"
		}
	}

	r.mu.Lock()
	r.names[uid] = name
	r.mu.Unlock()
	return name
}
