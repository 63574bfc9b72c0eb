package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "PRAZOS_"

type Application struct {
	Server   Server   `koanf:"server"`
	Calendar Calendar `koanf:"calendar"`
	Database Database `koanf:"db"`
	Google   Google   `koanf:"google"`
	Timeline Timeline `koanf:"timeline"`
}

type Server struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`
	IdleTimeout  time.Duration `koanf:"idletimeout"`
}

type Calendar struct {
	Timezone string `koanf:"timezone"`
	// Region keys the extra holidays stored in the database, e.g. "SP".
	Region string `koanf:"region"`
	// ExtraHolidays are "YYYY-MM-DD" or "YYYY-MM-DD=Name" entries added to the national calendar.
	ExtraHolidays []string `koanf:"extraholidays"`
	CountingMode  string   `koanf:"countingmode"`
}

type Database struct {
	Enabled bool   `koanf:"enabled"`
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
	User    string `koanf:"user"`
	Pass    string `koanf:"pass"`
	Name    string `koanf:"name"`
	Schema  string `koanf:"schema"`
}

type Google struct {
	HolidayCalendarId string  `koanf:"holidaycalendarid"`
	ApiKey            string  `koanf:"apikey"`
	CredentialsFile   string  `koanf:"credentialsfile"`
	Breaker           Breaker `koanf:"breaker"`
}

type Breaker struct {
	MaxRequests      uint32        `koanf:"maxrequests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failurethreshold"`
}

type Timeline struct {
	LookbackDays      int     `koanf:"lookbackdays"`
	MinSla            int     `koanf:"minsla"`
	MaxSla            int     `koanf:"maxsla"`
	ReviewProbability float64 `koanf:"reviewprobability"`
	LateProbability   float64 `koanf:"lateprobability"`
	StartTime         string  `koanf:"starttime"`
	ReviewStartTime   string  `koanf:"reviewstarttime"`
	ReviewDueTime     string  `koanf:"reviewduetime"`
	DueTime           string  `koanf:"duetime"`
	ClosedTime        string  `koanf:"closedtime"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr:         ":8181",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Calendar: Calendar{
			Timezone:     "America/Sao_Paulo",
			Region:       "BR",
			CountingMode: "business",
		},
		Database: Database{
			Enabled: false,
			Host:    "localhost",
			Port:    5432,
			User:    "prazos",
			Name:    "prazos",
			Schema:  "prazos",
		},
		Google: Google{
			HolidayCalendarId: "pt.brazilian#holiday@group.v.calendar.google.com",
			Breaker: Breaker{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 3,
			},
		},
		Timeline: Timeline{
			LookbackDays:      30,
			MinSla:            3,
			MaxSla:            15,
			ReviewProbability: 0.5,
			LateProbability:   0.3,
			StartTime:         "09:00",
			ReviewStartTime:   "09:00",
			ReviewDueTime:     "18:00",
			DueTime:           "18:00",
			ClosedTime:        "17:00",
		},
	}
}

// Load layers the defaults, the optional YAML file at path, an optional .env file and
// PRAZOS_* environment variables, later sources winning. PRAZOS_DB_HOST maps to db.host.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
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

	_ = godotenv.Load()

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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
