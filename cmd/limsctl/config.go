package main

import (
	"github.com/terryfox-lims/limsclient/pkg/credential"
	"github.com/terryfox-lims/limsclient/pkg/httpclient"
	"github.com/terryfox-lims/limsclient/pkg/logger"
	"github.com/terryfox-lims/limsclient/pkg/session"
)

// envPrefix is prepended to every variable of appConfig, e.g. LIMS_API_URL.
const envPrefix = "LIMS_"

type appConfig struct {
	API        httpclient.Config
	Credential credential.Config
	Session    session.Config
	Log        logger.Config
}
