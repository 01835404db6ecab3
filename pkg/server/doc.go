// Package server provides the HTTP server for the TIL acronym catalogue.
package server
