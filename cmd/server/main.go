package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/mkoval/sidewinder/internal/game"
	"github.com/mkoval/sidewinder/internal/ui"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "2323"

	maxConnectionsPerIP = 4

	serverDBPath = "saver_scores.db"
)

var (
	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex
)

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

func incrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]++
}

func decrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
}

func getCount(ip string) int {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	return ipCounter[ip]
}

// Every session runs its own simulation, so the limiter is what keeps one
// address from spinning up an unbounded number of tick loops.
func connectionLimiterMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)
		if getCount(ip) >= maxConnectionsPerIP {
			log.Warn("connection denied: IP limit exceeded", "ip", ip, "limit", maxConnectionsPerIP)
			s.Write([]byte("Too many active savers from your IP. Please try again later.\r\n"))
			s.Close()
			return
		}

		incrementIP(ip)
		log.Info("connection accepted", "ip", ip, "current_count", getCount(ip))
		next(s)
		decrementIP(ip)
		log.Info("connection closed", "ip", ip)
	}
}

func main() {
	log.SetLevel(log.InfoLevel)

	host := os.Getenv("SIDEWINDER_HOST")
	if host == "" {
		host = defaultHost
	}
	port := os.Getenv("SIDEWINDER_PORT")
	if port == "" {
		port = defaultPort
	}
	hostKeyPath := os.Getenv("SIDEWINDER_HOST_KEY_PATH")

	scores, err := game.NewScoreService(serverDBPath)
	if err != nil {
		log.Warn("score store unavailable, sessions will not persist scores", "error", err)
		scores = nil
	}
	defer scores.Close()

	viewHandler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()

		cols, rows := game.DefaultCols, game.DefaultRows
		if pty.Window.Width > 0 && pty.Window.Height > 0 {
			cols, rows = pty.Window.Width-2, pty.Window.Height-3
		}

		director := game.NewDirector(cols, rows, scores)
		director.Start()
		go func() {
			<-sshSession.Context().Done()
			director.Stop()
		}()

		controllerModel := ui.NewControllerModel(director, scores, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(host+":"+port),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("starting SSH server", "host", host, "port", port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("could not stop server", "error", err)
	}
}
