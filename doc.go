// Package main provides the entry point of the ChaTop API server.
// It runs a Fiber web service exposing a JSON API for rentals, users and
// messages, secured with stateless HS256 bearer tokens. Data is stored with
// gorm on MySQL, PostgreSQL or SQLite and rental pictures on local disk.
package main
