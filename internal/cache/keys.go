package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "quizmaster"

	// CatalogNamespace holds the subject listing shared by every learner.
	CatalogNamespace = "catalog"
	// AdminNamespace holds administrator views shared by every administrator.
	AdminNamespace = "admin"
)

func SubjectNamespace(subjectID int64) string {
	return "subject:" + strconv.FormatInt(subjectID, 10)
}

func QuizNamespace(quizID int64) string {
	return "quiz:" + strconv.FormatInt(quizID, 10)
}

func UserNamespace(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// Key identifies a cached response by namespace, endpoint and request
// parameters. It never depends on anything but these declared inputs.
type Key struct {
	Namespace string
	Endpoint  string
	Params    []string
}

// UserKey builds a key scoped to one authenticated user.
func UserKey(userID int64, endpoint string, params ...string) Key {
	return Key{Namespace: UserNamespace(userID), Endpoint: endpoint, Params: params}
}

// NamespaceKey builds a key that is independent of the caller.
func NamespaceKey(namespace, endpoint string, params ...string) Key {
	return Key{Namespace: namespace, Endpoint: endpoint, Params: params}
}

// Concrete returns the redis key for this Key under the given namespace
// generation. Params are joined by "_" and appended when present.
func (k Key) Concrete(generation int64) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, k.Namespace, "g" + strconv.FormatInt(generation, 10), k.Endpoint}, ":")
	if len(k.Params) > 0 {
		return strings.Join([]string{baseKey, strings.Join(k.Params, "_")}, ":")
	}
	return baseKey
}

func (k Key) String() string {
	return k.Concrete(0)
}

// GenerationKey holds the namespace's generation counter.
func GenerationKey(namespace string) string {
	return strings.Join([]string{GlobalKeyPrefix, namespace, "gen"}, ":")
}

// MembersKey holds the set of concrete keys written under the namespace.
func MembersKey(namespace string) string {
	return strings.Join([]string{GlobalKeyPrefix, namespace, "keys"}, ":")
}

// ID formats an integer id as a key parameter.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}
