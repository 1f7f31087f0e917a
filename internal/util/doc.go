// Package util provides internal helpers shared across engine packages
package util
