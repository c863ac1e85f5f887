package out

// StoragePort is the durable client-side key-value store holding the session
// credential and the serialized current user between process restarts.
type StoragePort interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Delete(key string) error
}

const (
	StorageKeyToken = "auth_token"
	StorageKeyUser  = "auth_user"
)
