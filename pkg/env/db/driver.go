package db

import (
	"fmt"
	"net/url"
)

const (
	driverMySQL      = "mysql"
	driverPostgreSQL = "pgx"

	driverMySQLPort      = 3306
	driverPostgreSQLPort = 5432
)

// DriverType is the database flavour named by DB_DRIVER. Aliases resolve to
// the name the driver registers with database/sql.
type DriverType string

func (t DriverType) String() string {
	return t.Name()
}

func (t DriverType) Name() string {
	switch t {
	case "mysql", "mariadb":
		return driverMySQL
	case "postgresql", "postgres", "pgx":
		return driverPostgreSQL
	default:
		return ""
	}
}

func (t DriverType) Port() int {
	switch t.Name() {
	case driverMySQL:
		return driverMySQLPort
	case driverPostgreSQL:
		return driverPostgreSQLPort
	default:
		return 0
	}
}

// PostgreSQL reports whether the driver expects numbered placeholders.
func (t DriverType) PostgreSQL() bool {
	return t.Name() == driverPostgreSQL
}

func (t DriverType) DSN(user, password, host string, port int, name string) string {
	switch t.Name() {
	case driverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", user, password, host, port, name)
	case driverPostgreSQL:
		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   fmt.Sprintf("%s:%d", host, port),
			Path:   "/" + name,
		}
		return u.String()
	default:
		return ""
	}
}

func (t DriverType) IsValid() bool {
	return t.Name() != ""
}
