package configs

// Upload controls where profile avatars land on disk and the URL prefix
// they are served under.
type Upload struct {
	Dir       string `env:"DIR" envDefault:"uploads"`
	URLPrefix string `env:"URL_PREFIX" envDefault:"/uploads"`
	// MaxAvatarBytes caps avatar file size; multipart profile updates
	// beyond this are rejected.
	MaxAvatarBytes int64 `env:"MAX_AVATAR_BYTES" envDefault:"2097152"`
}
