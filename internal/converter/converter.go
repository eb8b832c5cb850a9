package converter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mush1e/drunken-diver/internal/diver"
)

const (
	frameBuffer = 300
	// A job nobody streams is dropped after this long.
	jobIdleTimeout = 2 * time.Minute
)

// ErrTooLarge is returned by StartJob when the upload exceeds MaxUpload.
var ErrTooLarge = errors.New("converter: upload too large")

const (
	KindTop    = "top"
	KindRow    = "row"
	KindBottom = "bottom"
)

// FrameData is one line of art sent to a streaming client.
type FrameData struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
	Width   int    `json:"width"`
	Row     int    `json:"row,omitempty"`
}

type Job struct {
	FramesChan chan *FrameData
}

var (
	jobs   = make(map[string]*Job)
	jobsMu sync.Mutex
)

func removeJob(jobID string) bool {
	jobsMu.Lock()
	defer jobsMu.Unlock()
	_, ok := jobs[jobID]
	delete(jobs, jobID)
	return ok
}

// StartJob spools the uploaded "data" file to disk and starts walking it in
// the background. The returned id is used with StreamJob.
func StartJob(r *http.Request, opts Options) (string, error) {
	if err := diver.CheckWidth(opts.Width); err != nil {
		return "", fmt.Errorf("converter: %w", err)
	}

	file, header, err := r.FormFile("data")
	if err != nil {
		return "", fmt.Errorf("error getting uploaded file: %w", err)
	}
	defer file.Close()

	log.Printf("Processing file: %s, size: %d bytes", header.Filename, header.Size)

	if opts.MaxUpload > 0 && header.Size > opts.MaxUpload {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, header.Size)
	}

	tmpF, err := os.CreateTemp("", "dive-*.bin")
	if err != nil {
		return "", fmt.Errorf("error creating temp file: %w", err)
	}

	tmpPath := tmpF.Name()
	log.Printf("Created temporary file: %s", tmpPath)

	var src io.Reader = file
	if opts.MaxUpload > 0 {
		src = io.LimitReader(file, opts.MaxUpload+1)
	}
	n, err := io.Copy(tmpF, src)
	tmpF.Close()
	if err == nil && opts.MaxUpload > 0 && n > opts.MaxUpload {
		err = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, opts.MaxUpload)
	}
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("error copying file: %w", err)
	}

	jobID := fmt.Sprintf("%d", time.Now().UnixNano())

	framesChan := make(chan *FrameData, frameBuffer)

	jobsMu.Lock()
	jobs[jobID] = &Job{FramesChan: framesChan}
	jobsMu.Unlock()

	go process(tmpPath, jobID, opts, framesChan)

	return jobID, nil
}

func process(path, jobID string, opts Options, framesChan chan<- *FrameData) {
	rows := 0
	defer func() {
		close(framesChan)
		os.Remove(path)
		log.Printf("Job %s completed after %d rows, temporary file removed", jobID, rows)

		time.AfterFunc(jobIdleTimeout, func() {
			if removeJob(jobID) {
				log.Printf("Job %s expired before it was streamed", jobID)
			}
		})
	}()

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Error opening job input: %v", err)
		return
	}
	defer f.Close()

	src, err := Source(f, opts.Digest)
	if err != nil {
		log.Printf("Error preparing job input: %v", err)
		return
	}
	d, err := diver.NewDive(src, opts.Width)
	if err != nil {
		log.Printf("Error starting dive: %v", err)
		return
	}

	send := func(frame *FrameData) bool {
		select {
		case framesChan <- frame:
			return true
		case <-time.After(jobIdleTimeout):
			log.Printf("Job %s abandoned by client", jobID)
			removeJob(jobID)
			return false
		}
	}

	if !send(&FrameData{Kind: KindTop, Content: diver.TopBorder(opts.Width), Width: opts.Width}) {
		return
	}
	end := opts.Width / 2
	for row := range d.Rows() {
		rows++
		end = row.Cursor()
		if !send(&FrameData{Kind: KindRow, Content: row.String(), Width: opts.Width, Row: rows}) {
			return
		}
	}
	if err := d.Err(); err != nil {
		log.Printf("Error reading job input: %v", err)
	}
	send(&FrameData{Kind: KindBottom, Content: diver.BottomBorder(opts.Width, end), Width: opts.Width})
}

// StreamJob sends a job's frames as server-sent events, one every interval.
// A job can be streamed once.
func StreamJob(w http.ResponseWriter, ctx context.Context, jobID string, interval time.Duration) {
	jobsMu.Lock()
	job, ok := jobs[jobID]
	delete(jobs, jobID)
	jobsMu.Unlock()

	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	frameInterval := time.NewTicker(interval)
	defer frameInterval.Stop()

	for {
		select {
		case frame, ok := <-job.FramesChan:
			if !ok {
				fmt.Fprintf(w, "event: end\ndata: {\"status\":\"complete\"}\n\n")
				flusher.Flush()
				return
			}

			select {
			case <-frameInterval.C:
			case <-ctx.Done():
				return
			}

			data, _ := json.Marshal(frame)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}
