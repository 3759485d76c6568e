package main

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

func setLogLevel(l string) {
	switch l {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// inferOutputPath derives the output name from the template name:
// "haproxy.cfg.hbs" becomes "haproxy.cfg", anything without the suffix
// gets ".out" appended.
func inferOutputPath(templatePath string) string {
	if strings.HasSuffix(templatePath, ".hbs") {
		return strings.TrimSuffix(templatePath, ".hbs")
	}
	return templatePath + ".out"
}
