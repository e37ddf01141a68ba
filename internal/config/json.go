package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the optional JSON config file.
type StructuredJSONConfig struct {
	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		SubmitTimeout   Duration `json:"submit_timeout"`
		UploadRateLimit float64  `json:"upload_rate_limit"`
		UploadRateBurst int      `json:"upload_rate_burst"`
		AllowedOrigin   string   `json:"allowed_origin"`
	} `json:"server,omitempty"`

	Mail struct {
		Host          string   `json:"host"`
		Port          int      `json:"port"`
		Username      string   `json:"username"`
		Password      string   `json:"password"`
		Recipient     string   `json:"recipient"`
		TestRecipient string   `json:"test_recipient"`
		AttachSummary bool     `json:"attach_summary"`
		Timeout       Duration `json:"timeout"`
	} `json:"mail,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		Files struct {
			Dir string `json:"dir"`
		} `json:"files,omitempty"`

		Blob struct {
			BaseURL        string   `json:"base_url"`
			Token          string   `json:"token"`
			RequestTimeout Duration `json:"request_timeout"`
		} `json:"blob,omitempty"`
	} `json:"storage,omitempty"`

	Cleanup struct {
		Key string `json:"key"`
	} `json:"cleanup,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`

	LogLevel string `json:"log_level"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			SubmitTimeout:   time.Duration(jsonCfg.Server.SubmitTimeout),
			UploadRateLimit: jsonCfg.Server.UploadRateLimit,
			UploadRateBurst: jsonCfg.Server.UploadRateBurst,
			AllowedOrigin:   jsonCfg.Server.AllowedOrigin,
		},
		Mail: Mail{
			Host:          jsonCfg.Mail.Host,
			Port:          jsonCfg.Mail.Port,
			Username:      jsonCfg.Mail.Username,
			Password:      jsonCfg.Mail.Password,
			Recipient:     jsonCfg.Mail.Recipient,
			TestRecipient: jsonCfg.Mail.TestRecipient,
			AttachSummary: jsonCfg.Mail.AttachSummary,
			Timeout:       time.Duration(jsonCfg.Mail.Timeout),
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			Files: Files{
				Dir: jsonCfg.Storage.Files.Dir,
			},
			Blob: Blob{
				BaseURL:        jsonCfg.Storage.Blob.BaseURL,
				Token:          jsonCfg.Storage.Blob.Token,
				RequestTimeout: time.Duration(jsonCfg.Storage.Blob.RequestTimeout),
			},
		},
		Cleanup: Cleanup{
			Key: jsonCfg.Cleanup.Key,
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
		},
		LogLevel: jsonCfg.LogLevel,
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
