package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"gostock/domain/stock"
	"gostock/internal/errors"
	"gostock/internal/session"

	"github.com/gin-gonic/gin"
)

// XLSXContentType is sent with downloads
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// pageData is everything index.html renders
type pageData struct {
	Title string
	Intro template.HTML

	FileName    string
	ColumnCount int
	ColumnNames []string
	MaxColumns  int

	State            string
	FileAbsent       bool
	CanSubmit        bool
	SchemaOverridden bool

	Schema []string
	Rows   [][]string

	Notice    string
	Success   bool
	Error     string
	HasExport bool
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleIndex re-evaluates the session's file on every page load
func (s *Server) handleIndex(c *gin.Context) {
	sess := sessionFrom(c)
	err := s.service.Check(c.Request.Context(), sess)
	s.renderPage(c, sess, err, false)
}

// handleSettings updates file name and declared columns, then re-checks the file
func (s *Server) handleSettings(c *gin.Context) {
	sess := sessionFrom(c)
	applySettings(c, sess)
	err := s.service.Check(c.Request.Context(), sess)
	s.renderPage(c, sess, err, false)
}

func (s *Server) handleCreate(c *gin.Context) {
	sess := sessionFrom(c)
	applySettings(c, sess)
	err := s.service.Create(c.Request.Context(), sess)
	s.renderPage(c, sess, err, err == nil)
}

func (s *Server) handleAddItem(c *gin.Context) {
	sess := sessionFrom(c)
	err := s.service.Submit(c.Request.Context(), sess, c.PostFormMap("item"))
	s.renderPage(c, sess, err, err == nil)
}

// handleDownload sends the buffer produced by the last successful submission
func (s *Server) handleDownload(c *gin.Context) {
	sess := sessionFrom(c)
	if len(sess.Export) == 0 {
		err := errors.NotFound("export")
		c.String(errors.HTTPStatus(err), "Nothing to download yet. Add an item first.")
		return
	}

	c.Header("Content-Disposition", contentDisposition(downloadName(sess.FileName)))
	c.Data(http.StatusOK, XLSXContentType, sess.Export)
}

func (s *Server) renderPage(c *gin.Context, sess *session.Session, err error, success bool) {
	data := pageData{
		Title:       s.config.Title,
		Intro:       s.intro,
		FileName:    sess.FileName,
		ColumnCount: sess.ColumnCount,
		ColumnNames: sess.DeclaredSchema(),
		MaxColumns:  MaxColumns,

		State:            sess.State.String(),
		FileAbsent:       sess.State == stock.StateFileAbsent,
		CanSubmit:        sess.State.CanSubmit(),
		SchemaOverridden: sess.SchemaOverridden,

		Notice:    sess.Notice,
		Success:   success,
		HasExport: len(sess.Export) > 0,
	}

	if sess.Table != nil {
		data.Schema = sess.Table.Schema()
		for _, row := range sess.Table.Rows() {
			data.Rows = append(data.Rows, row)
		}
	}

	status := http.StatusOK
	if err != nil {
		s.logger.Error("[UI] %s %s (session %s): %v", c.Request.Method, c.Request.URL.Path, sess.ID, err)
		status = errors.HTTPStatus(err)
		data.Error = userMessage(err)
	}

	s.renderTemplate(c, status, "index.html", data)
}

// applySettings copies the settings form into the session.
// Unparsable or out-of-range counts keep the current value or are clamped.
func applySettings(c *gin.Context, sess *session.Session) {
	if name, ok := c.GetPostForm("file_name"); ok {
		sess.FileName = strings.TrimSpace(name)
	}

	count := sess.ColumnCount
	if raw, ok := c.GetPostForm("column_count"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			count = n
		}
	}
	if count > MaxColumns {
		count = MaxColumns
	}

	names := sess.ColumnNames
	if posted, ok := c.GetPostFormArray("column_name"); ok {
		names = posted
	}
	sess.SetColumns(count, names)
}

// userMessage hides internal detail for failures the user cannot act on
func userMessage(err error) string {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeValidationError, errors.CodeConflict:
		return err.Error()
	case errors.CodeParseError:
		return "The file could not be read as a spreadsheet."
	case errors.CodeIOError:
		return "The file could not be written."
	}
	return "Something went wrong."
}

// contentDisposition builds an attachment header. Non-ASCII names get an
// ASCII fallback plus an RFC 6266 filename* parameter.
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || r < 0x20 || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if fallback == name {
		return fmt.Sprintf("attachment; filename=\"%s\"", name)
	}
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", fallback, url.PathEscape(name))
}

func downloadName(fileName string) string {
	name := strings.TrimSpace(fileName)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(name)
	if name == "" {
		name = "stock_data.xlsx"
	}
	return name
}
