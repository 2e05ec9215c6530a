package sqlite

import "fmt"

// Config 定義 SQLite 記憶體資料庫的配置
type Config struct {
	// Name 資料庫名稱，空白時由 NewClient 以 UUID 產生，確保每個 Client 互相隔離
	Name string `yaml:"name"`

	// GORM 設定
	LogLevel string `yaml:"log_level"` // Log 等級: "silent", "error", "warn", "info"
}

// DSN (Data Source Name) 產生連線字串
// 格式: file:<name>?mode=memory&cache=shared
// 資料只存在記憶體，最後一條連線關閉後即消失
func (c *Config) DSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
}
