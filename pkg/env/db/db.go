package db

import (
	"os"
	"strconv"

	"github.com/worldtrends/explorer/pkg/env"
)

// Env configures the optional SQL audit store. It stays disabled unless
// DB_HOST is set.
type Env struct {
	Driver   DriverType
	Host     string
	Port     int
	Username string
	Password string
	Name     string
}

func NewDBEnv() *Env {
	return &Env{}
}

func (d *Env) Populate() error {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return nil
	}

	driver := DriverType(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = driverPostgreSQL
	}
	if !driver.IsValid() {
		return &env.TypeError{Name: "DB_DRIVER"}
	}
	d.Driver = driver
	d.Host = host

	d.Port = driver.Port()
	if s := os.Getenv("DB_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil || port <= 0 || port > 65535 {
			return &env.TypeError{Name: "DB_PORT"}
		}
		d.Port = port
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		return &env.Error{Name: "DB_USER"}
	}
	d.Username = user

	password, found := os.LookupEnv("DB_PASS")
	if !found {
		return &env.Error{Name: "DB_PASS"}
	}
	d.Password = password

	name := os.Getenv("DB_NAME")
	if name == "" {
		return &env.Error{Name: "DB_NAME"}
	}
	d.Name = name

	return nil
}

func (d *Env) Enabled() bool {
	return d.Host != ""
}

func (d *Env) ConnectionDSN() string {
	return d.Driver.DSN(d.Username, d.Password, d.Host, d.Port, d.Name)
}
