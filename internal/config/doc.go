// Package config provides configuration parsing for the portal server.
//
// The configuration is stored in portal.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 5173,
//	    "shutdownTimeout": "10s"
//	  },
//	  "i18n": {
//	    "default": "en",
//	    "fallback": "en",
//	    "dir": ""
//	  },
//	  "explorer": {
//	    "backend": "local",
//	    "root": "user_files",
//	    "s3": {
//	      "bucket": "systra-files",
//	      "prefix": "users/",
//	      "region": "eu-west-3"
//	    }
//	  },
//	  "telemetry": {
//	    "metrics": true,
//	    "tracerName": "portal"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
