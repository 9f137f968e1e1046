//nolint:testpackage // Exercises unexported error normalisation
package filesystem

import (
	"errors"
	iofs "io/fs"
	"testing"

	"github.com/pkg/sftp"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestNormalizeSFTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no such file", &sftp.StatusError{Code: uint32(sftp.ErrSSHFxNoSuchFile)}, iofs.ErrNotExist},
		{"permission denied", &sftp.StatusError{Code: uint32(sftp.ErrSSHFxPermissionDenied)}, iofs.ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			got := normalizeSFTPError(tt.err)
			g.Expect(got).Should(MatchError(tt.target))

			var statusErr *sftp.StatusError
			g.Expect(errors.As(got, &statusErr)).To(BeTrue())
		})
	}
}

func TestNormalizeSFTPError_PassesThroughOtherErrors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	plain := errors.New("connection reset")
	g.Expect(normalizeSFTPError(plain)).To(BeIdenticalTo(plain))

	failure := &sftp.StatusError{Code: uint32(sftp.ErrSSHFxFailure)}
	g.Expect(normalizeSFTPError(failure)).To(BeIdenticalTo(error(failure)))
}

func TestSFTPConnection_CloseWithNilClients(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	conn := &SFTPConnection{host: "render", port: 2222, user: "artist"}
	g.Expect(conn.Close()).To(Succeed())
	g.Expect(conn.Client()).To(BeNil())
	g.Expect(conn.Address()).To(Equal("artist@render:2222"))
}

func TestHostKeyCallback_MissingKnownHosts(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := hostKeyCallback(ConnectOptions{KnownHostsPath: t.TempDir() + "/known_hosts"})
	g.Expect(err).Should(MatchError(iofs.ErrNotExist))

	callback, err := hostKeyCallback(ConnectOptions{InsecureSkipHostKey: true})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(callback).NotTo(BeNil())
}
