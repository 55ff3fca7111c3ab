//go:build linux

package device

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/nilszeilon/keystats/internal/domain"
)

// DefaultGroup is the group that owns /dev/input/event* on most distributions.
const DefaultGroup = "input"

// GuardOptions configures a Guard.
type GuardOptions struct {
	Group       string
	InputDir    string
	SysfsDir    string
	Remediation io.Writer
	Logger      zerolog.Logger
}

// Guard verifies the process may read input devices before capture starts.
type Guard struct {
	group       string
	inputDir    string
	sysfsDir    string
	remediation io.Writer
	logger      zerolog.Logger

	lookupGroup   func(name string) (int, error)
	processGroups func() ([]int, error)
	openSession   func(inputDir, sysfsDir string, logger zerolog.Logger) (*Session, error)
}

// NewGuard fills in defaults for unset options.
func NewGuard(opts GuardOptions) *Guard {
	group := opts.Group
	if group == "" {
		group = DefaultGroup
	}
	inputDir := opts.InputDir
	if inputDir == "" {
		inputDir = "/dev/input"
	}
	out := opts.Remediation
	if out == nil {
		out = os.Stderr
	}
	return &Guard{
		group:         group,
		inputDir:      inputDir,
		sysfsDir:      opts.SysfsDir,
		remediation:   out,
		logger:        opts.Logger.With().Str("component", "access_guard").Logger(),
		lookupGroup:   lookupGroupID,
		processGroups: currentGroups,
		openSession:   OpenSession,
	}
}

// Check runs the membership check and then opens the device session.
// The returned session belongs to the caller.
func (g *Guard) Check() (*Session, error) {
	if err := g.CheckMembership(); err != nil {
		return nil, err
	}

	g.logger.Info().Str("dir", g.inputDir).Msg("checking device accessibility")
	session, err := g.openSession(g.inputDir, g.sysfsDir, g.logger)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CheckMembership fails when the authorization group is missing or the process is not in it.
// It never touches a device.
func (g *Guard) CheckMembership() error {
	g.logger.Info().Str("group", g.group).Msg("checking group membership")

	gid, err := g.lookupGroup(g.group)
	if err != nil {
		return domain.SystemError(err, "group %q does not exist, please create it", g.group)
	}

	groups, err := g.processGroups()
	if err != nil {
		return domain.SystemError(err, "read process groups")
	}
	if !slices.Contains(groups, gid) {
		g.printRemediation()
		return domain.PermissionError(nil, "user not in %q group, see instructions above", g.group)
	}

	g.logger.Info().Str("group", g.group).Msg("user is a member of the authorization group")
	return nil
}

func (g *Guard) printRemediation() {
	fmt.Fprintf(g.remediation, `
===================== Permission Error =====================
keystats needs read access to input devices.

Add your user to the '%[1]s' group:
    sudo usermod -a -G %[1]s $USER

Then log out and back in for the change to take effect.
============================================================
`, g.group)
}

func lookupGroupID(name string) (int, error) {
	grp, err := user.LookupGroup(name)
	if err != nil {
		return 0, err
	}
	gid, err := strconv.Atoi(grp.Gid)
	if err != nil {
		return 0, fmt.Errorf("parse gid %q: %w", grp.Gid, err)
	}
	return gid, nil
}

func currentGroups() ([]int, error) {
	groups, err := unix.Getgroups()
	if err != nil {
		return nil, err
	}
	return append(groups, unix.Getegid()), nil
}

// IsPermissionDenied reports whether err came from a failed membership check.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, &domain.Error{Kind: domain.KindPermission})
}
