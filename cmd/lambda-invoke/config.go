package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config struct
type Config struct {
	funcName string
	sdk      SDK
	region   string
	json     bool
	debug    bool
	tail     bool
	timeout  time.Duration

	payload string // request payload
}

// SDK selects the AWS SDK generation used to call Lambda.
type SDK string

const (
	// SDKv1 uses github.com/aws/aws-sdk-go
	SDKv1 SDK = "v1"
	// SDKv2 uses github.com/aws/aws-sdk-go-v2
	SDKv2 SDK = "v2"
)

func parseConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	var funcName string
	var sdk string
	var region string
	var json bool
	var debug bool
	var tail bool
	var timeout time.Duration
	var payload string
	var payloadFile string

	fs.StringVar(&funcName, "func", "", "function name or ARN")
	fs.StringVar(&sdk, "sdk", "v1", `aws sdk generation, "v1" or "v2"`)
	fs.StringVar(&region, "region", "", "aws region, overrides the region of the shared config")
	fs.BoolVar(&json, "json", false, "enable JSON log format")
	fs.BoolVar(&debug, "debug", false, "enable debug log level")
	fs.BoolVar(&tail, "tail", false, "follow the function logs until the request ends")
	fs.DurationVar(&timeout, "timeout", 0, "give up after this duration, 0 means no limit")
	fs.StringVar(&payload, "payload", "", "request payload. higher priority than file")
	fs.StringVar(&payloadFile, "payload_file", "", "speficy request payload file")
	// convert Environment Variables to flags
	fs.VisitAll(func(f *flag.Flag) {
		if s := os.Getenv(strings.ToUpper(f.Name)); s != "" {
			f.Value.Set(s)
		}
	})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if funcName == "" {
		return nil, fmt.Errorf("func required")
	}

	config := &Config{
		funcName: funcName,
		sdk:      SDK(strings.ToLower(sdk)),
		region:   region,
		json:     json,
		debug:    debug,
		tail:     tail,
		timeout:  timeout,
	}
	if config.sdk != SDKv1 && config.sdk != SDKv2 {
		return nil, fmt.Errorf("unknown sdk, %s", sdk)
	}

	// read payload file if payload is not specified
	if payloadFile != "" && payload == "" {
		buf, err := ioutil.ReadFile(payloadFile)
		if err != nil {
			return nil, fmt.Errorf("read payload file, %s: %w", payloadFile, err)
		}
		config.payload = string(buf)
	}
	if payload != "" {
		config.payload = payload
	}

	return config, nil
}

// requestPayload sends JSON text as is and anything else as a JSON string.
func (c *Config) requestPayload() interface{} {
	s := strings.TrimSpace(c.payload)
	if s == "" {
		return nil
	}
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	return c.payload
}

// NewLogger builds the command logger. It writes to stderr so stdout only
// carries the result.
func NewLogger(config *Config) *zap.SugaredLogger {
	level := zap.NewAtomicLevel()
	if config.debug {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}

	zapConfig := zap.Config{
		Level: level,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "msg",
			TimeKey:     "time",
			EncodeTime:  zapcore.ISO8601TimeEncoder,
			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalLevelEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if config.json {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
	}

	l, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}
