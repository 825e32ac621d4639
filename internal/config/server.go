package config

import "time"

// ServerConfig configures the session API and the SSH front end.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	SessionTimeout time.Duration `yaml:"session_timeout"` // Idle sessions older than this are purged
	MaxScores      int           `yaml:"max_scores"`      // Oldest scores beyond this are dropped
	TopScores      int           `yaml:"top_scores"`      // Size of the public leaderboard
	Site           SiteConfig    `yaml:"site"`
	SSH            SSHConfig     `yaml:"ssh"`
}

// SiteConfig is the public configuration served to clients.
type SiteConfig struct {
	BannerText    string   `yaml:"banner_text" json:"bannerText"`
	Balloons      int      `yaml:"balloons" json:"balloons"`
	CloudMessages []string `yaml:"cloud_messages" json:"cloudMessages"`
}

// SSHConfig configures remote terminal play.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}
