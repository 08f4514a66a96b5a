// Package logtail reads and highlights the tail of tody's log file.
//
// Read keeps a ring buffer of the last maxLines lines, so memory is bounded by
// the request rather than the file size. FilterLevel and LineLevel understand
// the level= field written by slog's text handler, and Colorizer paints the
// time, level and msg fields with lipgloss for `tody logs`.
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//	if err != nil {
//		return err
//	}
//	lines = logtail.FilterLevel(lines, slog.LevelWarn)
//	for _, line := range logtail.NewColorizer(lipgloss.DefaultRenderer()).Lines(lines) {
//		fmt.Println(line)
//	}
package logtail
