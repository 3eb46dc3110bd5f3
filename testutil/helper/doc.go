// Package helper provides test doubles and fixtures shared by the package tests.
package helper
