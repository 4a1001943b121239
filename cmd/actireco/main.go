package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rushteam/actireco/config"
	_ "github.com/rushteam/actireco/config/builders"
	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pipeline"
	"github.com/rushteam/actireco/recommender"
	"github.com/rushteam/actireco/sentiment"
	"github.com/rushteam/actireco/server"
	"github.com/rushteam/actireco/store"
)

func main() {
	app := config.LoadApp()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	boost, err := config.LoadBoost(app.BoostPath)
	if err != nil {
		logrus.WithError(err).Fatal("load boost config")
	}

	var pipelineCfg *pipeline.Config
	if app.PipelinePath != "" {
		pipelineCfg, err = pipeline.LoadFromYAML(app.PipelinePath)
		if err != nil {
			logrus.WithError(err).Fatal("load pipeline config")
		}
		if err := config.ValidatePipelineConfig(pipelineCfg); err != nil {
			logrus.WithError(err).Fatal("validate pipeline config")
		}
		logrus.WithField("path", app.PipelinePath).Info("pipeline config loaded")
	}

	var kv core.KeyValueStore
	if app.RedisAddr != "" {
		rs, err := store.NewRedisStore(app.RedisAddr, 0)
		if err != nil {
			logrus.WithError(err).Fatal("connect redis")
		}
		kv = rs
	} else {
		kv = store.NewMemoryStore()
	}
	defer kv.Close()

	var classifier core.SentimentService
	switch {
	case app.SentimentEndpoint != "":
		classifier = sentiment.NewHTTPClassifier(app.SentimentEndpoint)
	case app.SentimentLexiconPath != "":
		classifier = sentiment.NewLexiconModel(app.SentimentLexiconPath)
	}
	if classifier != nil {
		classifier = sentiment.NewFallback(classifier)
	}

	rec, err := recommender.New(recommender.Options{
		DataDir:        app.DataDir,
		ModelsDir:      app.ModelsDir,
		ContentWeight:  app.ContentWeight,
		Boost:          boost,
		KV:             kv,
		Sentiment:      classifier,
		PipelineConfig: pipelineCfg,
	})
	if err != nil {
		logrus.WithError(err).Fatal("init recommender")
	}
	defer rec.Close()

	if err := server.New(app, rec).Run(); err != nil {
		logrus.WithError(err).Error("server exited")
		os.Exit(1)
	}
}
