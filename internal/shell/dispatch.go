package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/vfs"
)

// errExit signals a clean REPL shutdown; it never reaches the user.
var errExit = errors.New("exit")

// Eval parses one command line, dispatches the verb against the current
// context, and returns the rendered output. Every navigation error is
// local and recoverable: the caller reports it and keeps the loop alive.
func (s *Session) Eval(ctx context.Context, line string) (string, error) {
	fields := tokenize(line)
	if len(fields) == 0 {
		return "", nil
	}
	verb, args := fields[0], fields[1:]

	switch verb {
	case "cd":
		target := "/"
		if len(args) > 0 {
			target = args[0]
		}
		return "", s.Chdir(ctx, target)
	case "pwd":
		return s.path + "\n", nil
	case "ls", "list":
		return s.evalList(ctx, args)
	case "show":
		return s.evalShow(ctx, args)
	case "star":
		return s.evalStar(ctx, args)
	case "tag":
		return s.evalTag(ctx, args, true)
	case "untag":
		return s.evalTag(ctx, args, false)
	case "mv":
		return s.evalRename(ctx, args)
	case "cp":
		return s.evalCopy(ctx, args)
	case "recent":
		return s.evalRecent(ctx, args)
	case "add":
		return s.evalAdd(ctx, args)
	case "rm":
		return s.evalRemove(ctx, args)
	case "visit":
		return s.evalVisit(ctx, args)
	case "help":
		return helpText(), nil
	case "exit", "quit":
		return "", errExit
	default:
		return "", fmt.Errorf("unknown command %q (try 'help')", verb)
	}
}

// evalList renders a view. With no argument it lists the current path;
// an argument lists another path without moving the session.
func (s *Session) evalList(ctx context.Context, args []string) (string, error) {
	path := s.path
	if len(args) > 0 {
		path = vfs.Normalize(args[0], s.path)
	}
	c, err := s.classifier.Classify(ctx, path)
	if err != nil {
		return "", err
	}
	if c.Kind == vfs.KindNotFound {
		return "", fmt.Errorf("list %s: %w", path, vfs.ErrPathNotFound)
	}
	return s.renderList(ctx, c)
}

// evalShow returns one field of a bookmark. An explicit id is resolved
// against the current context's bookmark set, not globally.
func (s *Session) evalShow(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("usage: show <field> [id]")
	}
	field := args[0]

	c, err := s.context(ctx)
	if err != nil {
		return "", err
	}

	var b *domain.Bookmark
	switch {
	case len(args) >= 2:
		id, ok := parseID(args[1])
		if !ok {
			return "", fmt.Errorf("show: %q is not a bookmark id", args[1])
		}
		b = inView(c, id)
		if b == nil {
			return "", fmt.Errorf("show %d at %s: %w", id, s.path, vfs.ErrTargetNotFound)
		}
	case c.Kind == vfs.KindBookmark:
		b = c.Bookmark
	default:
		return "", fmt.Errorf("show at %s: %w", s.path, vfs.ErrNoActiveTarget)
	}

	val, err := bookmarkField(b, field)
	if err != nil {
		return "", err
	}
	return val + "\n", nil
}

// evalStar toggles or sets the starred flag. With "on"/"off" the verb is
// idempotent; with no mode it toggles. An optional id overrides the
// ambient target.
func (s *Session) evalStar(ctx context.Context, args []string) (string, error) {
	mode := ""
	var idArg string
	for _, a := range args {
		switch {
		case a == "on" || a == "off":
			mode = a
		default:
			idArg = a
		}
	}

	b, err := s.resolveTarget(ctx, idArg)
	if err != nil {
		return "", err
	}

	starred := !b.Starred
	switch mode {
	case "on":
		starred = true
	case "off":
		starred = false
	}

	if err := s.store.SetStarred(ctx, b.ID, starred); err != nil {
		return "", err
	}
	s.log.Debug("star updated",
		logger.Int64("bookmark_id", b.ID),
		logger.Bool("starred", starred))
	if starred {
		return fmt.Sprintf("starred %d\n", b.ID), nil
	}
	return fmt.Sprintf("unstarred %d\n", b.ID), nil
}

// evalTag adds (add=true) or removes tags. The last argument may name a
// target: a bookmark id, "." for the ambient bookmark, or "*" for every
// bookmark currently in view. Everything else is a tag name.
func (s *Session) evalTag(ctx context.Context, args []string, add bool) (string, error) {
	names, targetArg := splitTarget(args)
	if len(names) == 0 {
		if add {
			return "", errors.New("usage: tag <name...> [id|.|*]")
		}
		return "", errors.New("usage: untag <name...> [id|.|*]")
	}

	targets, err := s.resolveTargets(ctx, targetArg)
	if err != nil {
		return "", err
	}

	for _, b := range targets {
		var next []string
		if add {
			next = domain.AddTags(b.Tags, names...)
		} else {
			next = domain.RemoveTags(b.Tags, names...)
		}
		if err := s.store.UpdateTags(ctx, b.ID, next); err != nil {
			return "", fmt.Errorf("updating tags on %d: %w", b.ID, err)
		}
	}

	verb := "tagged"
	if !add {
		verb = "untagged"
	}
	return fmt.Sprintf("%s %d bookmark(s)\n", verb, len(targets)), nil
}

// evalRename performs a global tag rename as a per-bookmark set union.
// Re-running after a partial failure is a no-op for bookmarks already
// rewritten, so the operation is resumable.
func (s *Session) evalRename(ctx context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: mv <oldTag> <newTag>")
	}
	old, new := args[0], args[1]

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return "", err
	}
	holders := make([]*domain.Bookmark, 0)
	for _, b := range all {
		if b.HasTag(old) {
			holders = append(holders, b)
		}
	}
	if len(holders) == 0 {
		return "", fmt.Errorf("mv %q: %w", old, vfs.ErrTagNotFound)
	}

	for i, b := range holders {
		next := domain.ReplaceTag(b.Tags, old, new)
		if err := s.store.UpdateTags(ctx, b.ID, next); err != nil {
			return "", &vfs.PartialRenameError{
				Old: old, New: new,
				Updated: i, Total: len(holders),
				Cause: err,
			}
		}
	}

	s.log.Info("tag renamed",
		logger.String("old", old),
		logger.String("new", new),
		logger.Int("bookmarks", len(holders)))
	return fmt.Sprintf("renamed %q -> %q on %d bookmark(s)\n", old, new, len(holders)), nil
}

// evalCopy copies an existing tag onto a target: "." for the ambient
// bookmark, a numeric id, or "*" for every bookmark in view.
func (s *Session) evalCopy(ctx context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: cp <tag> <.|id|*>")
	}
	tag, targetArg := args[0], args[1]

	tags, err := s.store.AllTags(ctx)
	if err != nil {
		return "", err
	}
	known := false
	for _, t := range tags {
		if t == tag {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("cp %q: %w", tag, vfs.ErrTagNotFound)
	}

	targets, err := s.resolveTargets(ctx, targetArg)
	if err != nil {
		return "", err
	}
	for _, b := range targets {
		if err := s.store.UpdateTags(ctx, b.ID, domain.AddTags(b.Tags, tag)); err != nil {
			return "", fmt.Errorf("copying tag to %d: %w", b.ID, err)
		}
	}
	return fmt.Sprintf("copied %q onto %d bookmark(s)\n", tag, len(targets)), nil
}

// evalRecent shows today's activity inside the current view: the ambient
// tag/domain/collection restriction composed with the activity filter.
func (s *Session) evalRecent(ctx context.Context, args []string) (string, error) {
	activity := s.classifier.DefaultActivity
	if len(args) > 0 {
		a, err := vfs.ParseActivity(args[0])
		if err != nil {
			return "", err
		}
		activity = a
	}

	c, err := s.context(ctx)
	if err != nil {
		return "", err
	}
	base := c.Bookmarks
	if c.Kind == vfs.KindBookmark {
		base = []*domain.Bookmark{c.Bookmark}
	}

	r, err := vfs.RangeFor(s.now(), vfs.PeriodToday)
	if err != nil {
		return "", err
	}
	return renderBookmarks(vfs.FilterByActivity(base, activity, r)), nil
}

func (s *Session) evalAdd(ctx context.Context, args []string) (string, error) {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	flags.SetOutput(&strings.Builder{})
	title := flags.StringP("title", "t", "", "bookmark title")
	desc := flags.StringP("description", "d", "", "bookmark description")
	tags := flags.StringSlice("tag", nil, "tags (repeatable or comma-separated)")
	if err := flags.Parse(args); err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	rest := flags.Args()
	if len(rest) != 1 {
		return "", errors.New("usage: add <url> [-t title] [-d description] [--tag a,b]")
	}

	id, err := s.store.NextID(ctx)
	if err != nil {
		return "", err
	}
	b := &domain.Bookmark{
		ID:          id,
		URL:         rest[0],
		Title:       *title,
		Description: *desc,
		Added:       s.now().UTC(),
		Tags:        domain.NormalizeTags(*tags),
	}
	if err := s.store.Save(ctx, b); err != nil {
		return "", err
	}
	s.log.Info("bookmark added",
		logger.Int64("bookmark_id", id),
		logger.String("url", b.URL))
	return fmt.Sprintf("added %d\n", id), nil
}

func (s *Session) evalRemove(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: rm <id>")
	}
	id, ok := parseID(args[0])
	if !ok {
		return "", fmt.Errorf("rm: %q is not a bookmark id", args[0])
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return "", err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed %d\n", id), nil
}

func (s *Session) evalVisit(ctx context.Context, args []string) (string, error) {
	var idArg string
	if len(args) > 0 {
		idArg = args[0]
	}
	b, err := s.resolveTarget(ctx, idArg)
	if err != nil {
		return "", err
	}
	if err := s.store.RecordVisit(ctx, b.ID, s.now()); err != nil {
		return "", err
	}
	return fmt.Sprintf("visited %d (%s)\n", b.ID, b.URL), nil
}

// resolveTarget picks the bookmark a mutating verb operates on: the
// explicit id when given (global lookup), else the ambient Bookmark
// context.
func (s *Session) resolveTarget(ctx context.Context, idArg string) (*domain.Bookmark, error) {
	if idArg != "" {
		id, ok := parseID(idArg)
		if !ok {
			return nil, fmt.Errorf("%q is not a bookmark id", idArg)
		}
		return s.store.GetByID(ctx, id)
	}

	c, err := s.context(ctx)
	if err != nil {
		return nil, err
	}
	if c.Kind != vfs.KindBookmark {
		return nil, fmt.Errorf("at %s: %w", s.path, vfs.ErrNoActiveTarget)
	}
	return c.Bookmark, nil
}

// resolveTargets expands a target argument into one or more bookmarks:
// "" or "." means the ambient bookmark, "*" every bookmark in the current
// view, and a number an explicit id.
func (s *Session) resolveTargets(ctx context.Context, targetArg string) ([]*domain.Bookmark, error) {
	if targetArg == "*" {
		c, err := s.context(ctx)
		if err != nil {
			return nil, err
		}
		if c.Kind == vfs.KindBookmark {
			return []*domain.Bookmark{c.Bookmark}, nil
		}
		if c.Bookmarks == nil {
			return nil, fmt.Errorf("at %s: %w", s.path, vfs.ErrNoActiveTarget)
		}
		return c.Bookmarks, nil
	}

	if targetArg == "." {
		targetArg = ""
	}
	b, err := s.resolveTarget(ctx, targetArg)
	if err != nil {
		return nil, err
	}
	return []*domain.Bookmark{b}, nil
}

// splitTarget separates tag names from an optional trailing target
// argument (id, "." or "*").
func splitTarget(args []string) (names []string, target string) {
	if len(args) == 0 {
		return nil, ""
	}
	last := args[len(args)-1]
	if last == "*" || last == "." {
		return args[:len(args)-1], last
	}
	if _, ok := parseID(last); ok && len(args) > 1 {
		return args[:len(args)-1], last
	}
	return args, ""
}

// inView finds an id inside a context's bookmark set.
func inView(c vfs.Context, id int64) *domain.Bookmark {
	if c.Kind == vfs.KindBookmark && c.Bookmark != nil && c.Bookmark.ID == id {
		return c.Bookmark
	}
	for _, b := range c.Bookmarks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// bookmarkField returns the named field rendered as text.
func bookmarkField(b *domain.Bookmark, field string) (string, error) {
	switch field {
	case "id":
		return fmt.Sprintf("%d", b.ID), nil
	case "url":
		return b.URL, nil
	case "title":
		return b.Title, nil
	case "description":
		return b.Description, nil
	case "added":
		return b.Added.UTC().Format(time.RFC3339), nil
	case "last_visited":
		if b.LastVisited == nil {
			return "never", nil
		}
		return b.LastVisited.UTC().Format(time.RFC3339), nil
	case "visit_count":
		return fmt.Sprintf("%d", b.VisitCount), nil
	case "starred":
		return fmt.Sprintf("%v", b.Starred), nil
	case "reachable":
		if b.Reachable == nil {
			return "unknown", nil
		}
		return fmt.Sprintf("%v", *b.Reachable), nil
	case "tags":
		tags := append([]string(nil), b.Tags...)
		sort.Strings(tags)
		return strings.Join(tags, ","), nil
	case "domain":
		return b.Domain(), nil
	default:
		return "", fmt.Errorf("%w: %q", vfs.ErrFieldNotFound, field)
	}
}

// tokenize splits a command line into fields, honoring single and double
// quotes so titles with spaces survive.
func tokenize(line string) []string {
	var fields []string
	var cur strings.Builder
	var quote rune
	pending := false
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			pending = true
		case r == ' ' || r == '\t':
			if pending {
				fields = append(fields, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		fields = append(fields, cur.String())
	}
	return fields
}

func helpText() string {
	return `navigation:
  cd <path>            change virtual directory (.. and absolute paths work)
  pwd                  print current virtual path
  ls [path]            list the current view, or another path in place
commands:
  show <field> [id]    print one field (url, title, tags, added, ...)
  star [on|off] [id]   toggle or set the star flag
  tag <name...> [t]    add tags; target t is an id, '.' or '*'
  untag <name...> [t]  remove tags
  mv <old> <new>       rename a tag everywhere
  cp <tag> <.|id|*>    copy a tag onto a target
  recent [activity]    today's visited/added/starred inside the current view
  add <url> [flags]    add a bookmark (-t title, -d description, --tag a,b)
  rm <id>              delete a bookmark
  visit [id]           record a visit
  help, exit
`
}
