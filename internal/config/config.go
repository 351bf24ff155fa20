// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
// 凭据通过环境变量（DB_HOST / DB_USER / DB_PASSWORD / DB_NAME）注入，
// 配置文件中的同名字段仅作为本地开发的默认值。
type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// DSN 根据配置拼接 gorm MySQL 驱动所需的连接字符串。
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// StorageConfig 存储文件存储后端的配置。
type StorageConfig struct {
	// Type 选择存储后端："local" 或 "minio"。
	Type  string      `mapstructure:"type"`
	Local LocalConfig `mapstructure:"local"`
	MinIO MinIOConfig `mapstructure:"minio"`
}

// LocalConfig 存储本地磁盘存储的配置。
type LocalConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
// 数据库凭据相关的环境变量优先于配置文件中的同名字段。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 与原部署约定一致的环境变量名
	_ = viper.BindEnv("database.mysql.host", "DB_HOST")
	_ = viper.BindEnv("database.mysql.user", "DB_USER")
	_ = viper.BindEnv("database.mysql.password", "DB_PASSWORD")
	_ = viper.BindEnv("database.mysql.dbname", "DB_NAME")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}
