package store

import (
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries every knob the tool reads at startup. Values come from
// .copyto.yaml (searched in the working directory), COPYTO_* environment
// variables, or the defaults below.
type Config interface {
	StorePath() string
	HistoryPath() string
	Exclusions() []string
	LogEnabled() bool
	LogName() string
	PromptBeforeExit() bool
	Tool() string
	Retries() int
	RetryWait() time.Duration
}

func LoadConfig() (Config, error) {
	viper.SetDefault("store", "~/.copyto/targets.txt")
	viper.SetDefault("history", "~/.copyto/history")
	viper.SetDefault("exclude", []string{"$RECYCLE.BIN", "System Volume Information", "Thumbs.db"})
	viper.SetDefault("log", true)
	viper.SetDefault("logname", "copy.log")
	viper.SetDefault("prompt", true)
	viper.SetDefault("tool", "robocopy")
	viper.SetDefault("retries", 2)
	viper.SetDefault("retrywait", 5)

	viper.SetConfigName(".copyto") // .yaml is implicit
	viper.SetEnvPrefix("COPYTO")
	viper.AutomaticEnv()

	if override := os.Getenv("COPYTO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &fileConfig{
		Store:   expand(viper.GetString("store")),
		History: expand(viper.GetString("history")),
		Exclude: viper.GetStringSlice("exclude"),
		Log:     viper.GetBool("log"),
		Name:    viper.GetString("logname"),
		Prompt:  viper.GetBool("prompt"),
		Binary:  viper.GetString("tool"),
		Retry:   viper.GetInt("retries"),
		Wait:    time.Duration(viper.GetInt("retrywait")) * time.Second,
	}, nil
}

// expand resolves a leading ~ . A path that fails to expand is returned
// as-is, the store will surface the real error on first use.
func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return filepath.Clean(expanded)
}

type fileConfig struct {
	Store   string        `json:"store"`
	History string        `json:"history"`
	Exclude []string      `json:"exclude"`
	Log     bool          `json:"log"`
	Name    string        `json:"logname"`
	Prompt  bool          `json:"prompt"`
	Binary  string        `json:"tool"`
	Retry   int           `json:"retries"`
	Wait    time.Duration `json:"retrywait"`
}

func (f *fileConfig) StorePath() string        { return f.Store }
func (f *fileConfig) HistoryPath() string      { return f.History }
func (f *fileConfig) Exclusions() []string     { return f.Exclude }
func (f *fileConfig) LogEnabled() bool         { return f.Log }
func (f *fileConfig) LogName() string          { return f.Name }
func (f *fileConfig) PromptBeforeExit() bool   { return f.Prompt }
func (f *fileConfig) Tool() string             { return f.Binary }
func (f *fileConfig) Retries() int             { return f.Retry }
func (f *fileConfig) RetryWait() time.Duration { return f.Wait }
