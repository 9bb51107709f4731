package messaging

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"net/smtp"
	"net/textproto"
	"strconv"
	"sync"
	"time"

	"github.com/knadh/smtppool"
)

type SmtpClients struct {
	servers SmtpServerList

	mu             sync.Mutex
	connectionPool []*smtppool.Pool
	counter        int
}

func NewSmtpClients(config SmtpServerList) (*SmtpClients, error) {
	sc := &SmtpClients{
		servers:        config,
		counter:        0,
		connectionPool: initConnectionPool(config),
	}
	if len(sc.connectionPool) < 1 {
		return nil, errors.New("no smtp server connection in the pool")
	}
	return sc, nil
}

func initConnectionPool(serverList SmtpServerList) []*smtppool.Pool {
	connectionPools := []*smtppool.Pool{}
	for _, server := range serverList.Servers {
		pool, err := connectToPool(server)
		if err != nil {
			slog.Error("error setting up connection pool", slog.String("error", err.Error()), slog.String("server", server.Address()))
			continue
		}
		connectionPools = append(connectionPools, pool)
	}
	return connectionPools
}

func connectToPool(server SmtpServer) (*smtppool.Pool, error) {
	auth := smtp.PlainAuth(
		"",
		server.AuthData.Username,
		server.AuthData.Password,
		server.Host,
	)
	if server.AuthData.Username == "" && server.AuthData.Password == "" {
		auth = nil
	}

	tlsOpts := &tls.Config{
		InsecureSkipVerify: server.InsecureSkipVerify,
		ServerName:         server.Host,
	}
	port, err := strconv.Atoi(server.Port)
	if err != nil {
		return nil, err
	}

	return smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            port,
		MaxConns:        server.Connections,
		IdleTimeout:     time.Duration(server.SendTimeout) * time.Second,
		PoolWaitTimeout: time.Duration(server.SendTimeout) * time.Second,
		TLSConfig:       tlsOpts,
		Auth:            auth,
	})
}

// selectPool picks the next connection pool round robin, re-initializing the
// pool list when every earlier connection attempt failed. Safe for concurrent
// senders.
func (sc *SmtpClients) selectPool() (index int, pool *smtppool.Pool, err error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if len(sc.connectionPool) < 1 {
		sc.connectionPool = initConnectionPool(sc.servers)
		if len(sc.connectionPool) < 1 {
			return 0, nil, errors.New("no servers defined")
		}
	}

	sc.counter += 1
	index = sc.counter % len(sc.connectionPool)
	return index, sc.connectionPool[index], nil
}

func (sc *SmtpClients) replacePool(index int, pool *smtppool.Pool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if index < len(sc.connectionPool) {
		sc.connectionPool[index] = pool
	}
}

func (sc *SmtpClients) SendMail(
	to []string,
	subject string,
	htmlContent string,
	overrides *HeaderOverrides,
) error {
	index, selectedServer, err := sc.selectPool()
	if err != nil {
		return err
	}

	from := sc.servers.From
	sender := sc.servers.Sender
	replyTo := sc.servers.ReplyTo

	if overrides != nil {
		if overrides.From != "" {
			from = overrides.From
		}
		if overrides.Sender != "" {
			sender = overrides.Sender
		}

		if overrides.NoReplyTo {
			replyTo = []string{}
		} else if len(overrides.ReplyTo) > 0 {
			replyTo = overrides.ReplyTo
		}
	}

	e := smtppool.Email{
		To:      to,
		From:    from,
		Sender:  sender,
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    []byte(htmlContent),
		Headers: textproto.MIMEHeader{},
	}
	err = selectedServer.Send(e)

	if err != nil {
		// close and try to reconnect
		slog.Error("error when trying to send email", slog.String("error", err.Error()))

		pool, errReconnect := connectToPool(sc.servers.Servers[index])
		if errReconnect != nil {
			slog.Error("cannot reconnect pool", slog.String("error", errReconnect.Error()), slog.String("server", sc.servers.Servers[index].Host))
		} else {
			slog.Info("reconnected to pool", slog.String("server", sc.servers.Servers[index].Host))
			sc.replacePool(index, pool)
		}
	}
	return err
}
