package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-catalog"

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Keys must carry their own type prefix to stay collision free.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// HomeContentUUID returns the stable id of a home content document.
func HomeContentUUID(key string) uuid.UUID {
	return UUID(namespace + ":home_content:" + strings.ToLower(strings.TrimSpace(key)))
}
