package utils

import (
	"log"
	"os"
	"strconv"
	"time"
)

func GetStringEnv(envVar string, defaultValue string) string {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	return envValue
}

func GetRequiredStringEnv(envVar string) string {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	return envValue
}

func GetIntEnv(envVar string, defaultValue int) int {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(envValue)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: '%s' is not an integer", envVar, envValue)
	}
	return intValue
}

func GetDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(envValue)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: '%s' is not a duration", envVar, envValue)
	}
	return duration
}
