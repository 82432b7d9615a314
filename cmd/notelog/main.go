// Command notelog is a terminal client for the NoteLog API.
//
// 환경변수:
//   - NOTELOG_API_URL: API base URL (default: http://localhost:5000/api)
//   - NOTELOG_DATA: 로컬 sqlite 파일 (default: ~/.notelog/notelog.db)
//   - NOTELOG_REMINDER_INTERVAL / NOTELOG_REMINDER_WINDOW / NOTELOG_REFRESH_INTERVAL
package main

import (
	"fmt"
	"os"

	"github.com/notelog/backend/internal/config"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notelog: %v\n", err)
		os.Exit(1)
	}

	app := newApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	err = newRootCmd(app).Execute()
	// RunE가 실패하면 PersistentPostRunE가 불리지 않는다
	_ = app.close()
	if err != nil {
		os.Exit(1)
	}
}
