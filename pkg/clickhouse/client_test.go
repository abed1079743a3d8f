package clickhouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	cfg := ClientConfig{
		Host:        "ch",
		Port:        9000,
		Database:    "econ",
		User:        "default",
		Password:    "pw",
		DialTimeout: 5 * time.Second,
		MaxExecTime: time.Minute,
		AsyncInsert: true,
	}
	assert.Equal(t,
		"clickhouse://default:pw@ch:9000/econ?dial_timeout=5s&max_execution_time=60&async_insert=1",
		BuildDSN(cfg))

	cfg = ClientConfig{Host: "ch", Port: 8123, Database: "econ", User: "u", UseHTTP: true}
	assert.Equal(t, "http://u:@ch:8123/econ", BuildDSN(cfg))
}

func TestNewClientValidates(t *testing.T) {
	_, err := NewClient(ClientConfig{Port: 9000})
	assert.Error(t, err)

	_, err = NewClient(ClientConfig{Host: "ch", Port: 70000})
	assert.Error(t, err)
}

func TestClientConfigDefaults(t *testing.T) {
	cfg := ClientConfig{Host: "ch", Database: "econ"}.withDefaults()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "econ", cfg.Database)
	assert.Equal(t, "default", cfg.User)
	assert.Equal(t, DefaultClientConfig().DialTimeout, cfg.DialTimeout)
	assert.NoError(t, cfg.Validate())
}
