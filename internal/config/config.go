package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const EnvPrefix = "EVENTBOARD_"

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Application struct {
	Server     Server     `koanf:"server"`
	Storage    Storage    `koanf:"storage"`
	Database   Database   `koanf:"db"`
	Mongo      Mongo      `koanf:"mongo"`
	Calculator Calculator `koanf:"calculator"`
	Events     Events     `koanf:"events"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Storage struct {
	// Driver selects the backend of the repositories: "postgres" or "mongo".
	Driver string `koanf:"driver"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Mongo struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type Calculator struct {
	// StrictOperators rejects operators other than + - * / instead of dividing.
	StrictOperators bool `koanf:"strictoperators"`
}

type Events struct {
	// StrictStatus restricts event status to draft/open/closed/completed.
	StrictStatus bool `koanf:"strictstatus"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Storage: Storage{
			Driver: DriverPostgres,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "eventboard",
			Pass:   "",
			Name:   "eventboard",
			Schema: "eventboard",
		},
		Mongo: Mongo{
			URI:      "mongodb://localhost:27017",
			Database: "eventboard",
		},
		Calculator: Calculator{
			StrictOperators: false,
		},
		Events: Events{
			StrictStatus: true,
		},
	}
}

// Load layers the built-in defaults, the YAML file at path (if it exists) and
// EVENTBOARD_* environment variables, later sources winning.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// EVENTBOARD_DB_HOST -> db.host
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
