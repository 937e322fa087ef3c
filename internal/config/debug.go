package config

import "os"

func IsDebug() bool {
	return os.Getenv("FIN_DEBUG") == "1"
}
