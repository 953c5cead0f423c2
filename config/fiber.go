package config

import "os"

func GetFiberHttpPort() string {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	return port
}

func GetFiberListenAddress() string {
	return ":" + GetFiberHttpPort()
}
