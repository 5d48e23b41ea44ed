package filesystem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// User is one account from the system account database
type User struct {
	Name string
	UID  uint32
	GID  uint32
	Home string
}

// PasswdSource enumerates accounts from a passwd(5) formatted file
type PasswdSource struct {
	Path string
}

// NewPasswdSource creates a source reading the given passwd file
func NewPasswdSource(path string) *PasswdSource {
	if path == "" {
		path = "/etc/passwd"
	}
	return &PasswdSource{Path: path}
}

// Users returns every account sorted by name
func (s *PasswdSource) Users() ([]User, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open account database: %w", err)
	}
	defer f.Close()

	return ParsePasswd(f)
}

// ParsePasswd parses passwd(5) lines. Comments, blank and malformed lines are ignored.
func ParsePasswd(r io.Reader) ([]User, error) {
	var users []User
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ":")
		if len(fields) < 7 || fields[0] == "" {
			continue
		}
		uid, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			continue
		}
		gid, err := strconv.ParseUint(fields[3], 10, 32)
		if err != nil {
			continue
		}

		users = append(users, User{
			Name: fields[0],
			UID:  uint32(uid),
			GID:  uint32(gid),
			Home: fields[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account database: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})
	return users, nil
}
