//go:build !windows

package auth

const HOME = "HOME"
