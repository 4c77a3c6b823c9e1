package main

import "github.com/adanyl0v/task-tracker/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustEnsurePostgresSchema()

	app.MustListenAndServeHTTP()
}
