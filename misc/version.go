// Package misc holds program identity, values are set at link time.
package misc

var (
	appName = "mcat"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
