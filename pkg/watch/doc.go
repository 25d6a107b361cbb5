// Package watch re-runs configuration checks when files change or on a
// schedule.
//
// FileWatcher wraps fsnotify. It watches a directory tree (or the directory
// of a single file), filters events by extension, skips hidden files and
// debounces bursts of events so that an editor saving a file triggers one
// re-validation:
//
//	fw, err := watch.NewFileWatcher(watch.DefaultConfig("/etc/astron"), logger)
//	err = fw.Watch(ctx, func(ctx context.Context, paths []string) error {
//	    return linter.CheckFiles(ctx, paths)
//	})
//
// Scheduler wraps robfig/cron and runs a job on a standard cron expression.
package watch
