// Package watch re-runs work when a corpus file changes.
//
// CorpusWatcher wraps fsnotify with a Debouncer so that the several write
// events an editor produces for one save lead to a single reload:
//
//	w, err := watch.New(watch.Config{Path: "cards.yaml"}, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	err = w.Watch(ctx, func(ctx context.Context) error {
//	    return rerun(ctx)
//	})
package watch
