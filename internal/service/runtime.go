package service

import (
	"fmt"

	"keyword-radar/internal/config"
	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/api"
	"keyword-radar/pkg/logger"
	"keyword-radar/pkg/metrics"
	"keyword-radar/pkg/storage"
)

// Runtime holds the wired services of one process.
type Runtime struct {
	Analysis *KeywordService
	History  *HistoryStore
	closers  []func()
}

// Build wires storage, lookup clients, pacers and the analyzer from cfg.
func Build(cfg *config.Config) (*Runtime, error) {
	store, err := storage.NewBoltStorage(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	rt := &Runtime{
		History: NewHistoryStore(store, cfg.CSVPath()),
	}
	rt.closers = append(rt.closers, func() { _ = store.Close() })

	metrics.Init(rt.History)

	secLogger := logger.GetSecurityLogger()

	volumeCfg := cfg.VolumeClientConfig()
	volume := api.NewVolumeClient(volumeCfg)
	rt.closers = append(rt.closers, volume.Close)
	if !volumeCfg.Configured() {
		secLogger.SafeWarn("Search-ad credentials missing, monthly volumes will be 0", map[string]interface{}{
			"customer_id": volumeCfg.CustomerID,
			"endpoint":    volumeCfg.BaseURL,
		})
	}

	docCfg := cfg.DocumentClientConfig()
	docClient := api.NewDocumentCountClient(docCfg)
	rt.closers = append(rt.closers, docClient.Close)
	if !docCfg.Configured() {
		secLogger.SafeWarn("Search credentials missing, document counts will be 0", map[string]interface{}{
			"client_id": docCfg.ClientID,
			"endpoint":  docCfg.BaseURL,
		})
	}

	var documents api.DocumentCountSource = docClient
	if cfg.Storage.CacheSize > 0 {
		cached := api.NewCachedDocumentCountSource(docClient, cfg.Storage.CacheSize, cfg.CacheTTL())
		rt.closers = append(rt.closers, cached.Close)
		documents = cached
	}

	suggestions := api.NewSuggestionClient(cfg.SuggestionClientConfig())
	rt.closers = append(rt.closers, suggestions.Close)

	a, err := analyzer.New(analyzer.Sources{
		Volume:          volume,
		Documents:       documents,
		Suggestions:     suggestions,
		VolumePacer:     api.NewFixedDelayPacer(cfg.VolumeDelay()),
		DocumentPacer:   api.NewFixedDelayPacer(cfg.DocumentDelay()),
		SuggestionPacer: api.NewFixedDelayPacer(cfg.SuggestionDelay()),
	}, cfg.AnalyzerOptions())
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.Analysis = NewKeywordService(a, rt.History)
	return rt, nil
}

// Close releases clients and the store in reverse order
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}
