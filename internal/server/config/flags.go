package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-s", "-t", "-r", "-w", "-n", "-x", "-k", "-q", "-l", "-b", "-f", "-v"}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      access token validity, minutes (0 = never expires)
//	-r string   Redis address (empty = in-memory cache)
//	-w string   Redis password
//	-n int      Redis database number
//	-x int      cache TTL, seconds
//	-k string   Kafka brokers, comma separated
//	-q string   Kafka topic
//	-l float    rate limit, requests per second per client
//	-b int      rate limit burst
//	-f string   log format (slog | zerolog)
//	-v string   log level
//
// Unknown arguments are dropped by flagx.FilterArgs before parsing.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes, 0 = never expires)")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "w", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "n", config.RedisDB, "redis db")
	cacheTTL := fs.Int("x", int(config.CacheTTL.Seconds()), "cache ttl (in seconds)")

	brokers := fs.String("k", strings.Join(config.KafkaBrokers, ","), "kafka brokers, comma separated")
	fs.StringVar(&config.KafkaTopic, "q", config.KafkaTopic, "kafka topic")

	fs.Float64Var(&config.RateLimit, "l", config.RateLimit, "rate limit (requests per second)")
	fs.IntVar(&config.RateBurst, "b", config.RateBurst, "rate limit burst")

	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (slog|zerolog)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
	config.KafkaBrokers = flagx.SplitList(*brokers)
}
