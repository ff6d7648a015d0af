package common

import "os"

const defaultServiceName = "fairshift"

func GetServiceName() string {
	name := os.Getenv("SERVICE_NAME")
	if name == "" {
		return defaultServiceName
	}
	return name
}

func GetServiceInstance() string {
	instance := os.Getenv("SERVICE_INSTANCE")
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return "unknown"
		}
		return hostname
	}
	return instance
}
