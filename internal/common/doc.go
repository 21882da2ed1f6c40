// Package common holds the sentinel errors and wire constants shared by
// every other package in this module.
//
// This is an internal package not intended for direct use by applications.
package common
