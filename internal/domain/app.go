package domain

const (
	AppName    = "momentum-tetris-vault-toast"
	AppVersion = "1.0.0"

	StatusOK = "ok"
)

// AppInfo is the payload reported by the health endpoint.
type AppInfo struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

// CurrentAppInfo returns the fixed health payload for this build.
func CurrentAppInfo() AppInfo {
	return AppInfo{Status: StatusOK, App: AppName, Version: AppVersion}
}
