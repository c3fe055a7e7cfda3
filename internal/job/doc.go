// Package job runs long operations on worker goroutines.
//
// A job belongs to an owner and a window. Its start callback runs on a
// worker and talks back only through the Status it is handed: a stop flag
// the main loop may raise, an update request and a progress value. The
// main loop merges that state when the job's TIMER_JOBS timer fires, by
// calling Manager.HandleTimer; every other callback (init, update, end,
// completed, canceled, free) therefore runs on the main loop goroutine.
//
// Typical use:
//
//	j := jobs.GetOrCreate(win, owner, "Bake", job.FlagProgress)
//	j.SetCustomData(data, nil)
//	j.SetTimer(100*time.Millisecond, notifier.NCScene|notifier.NDFrame, 0)
//	j.SetCallbacks(job.Callbacks{Start: bake, End: finish})
//	jobs.Start(j)
package job
