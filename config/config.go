package config

import (
	"fmt"
	"os"
	"path"

	"github.com/lokichain/loki-node/common/utils"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/naoina/toml"
)

type Common struct {
	Level       string // alpha, dev, prod
	ServiceName string
}

type LogInfo struct {
	Path       string
	MaxAgeHour int
	RotateHour int
}

type DB struct {
	Path string
}

type Wallet struct {
	Path string
}

type Server struct {
	RestPort int `toml:"RestPort"`
}

// Network 체인 식별자와 기본 토큰
type Network struct {
	Tag   string `toml:"Tag"`   // bech32 human readable part, ex: lokichain
	Denom string `toml:"Denom"` // ex: LOKI
}

type Crypto struct {
	Hasher string `toml:"Hasher"` // sha256 | keccak256
}

type Mempool struct {
	ReleaseLimit int `toml:"ReleaseLimit"` // 블록 조립기가 한 번에 꺼내가는 최대 개수
}

type Cache struct {
	TxCacheSize int `toml:"TxCacheSize"`
}

// Genesis 초기 잔액 설정
type Genesis struct {
	Addresses []string `toml:"Addresses"`
	Balances  []uint64 `toml:"Balances"`
}

// App 라우팅 가능한 (app, operation) 목록
type App struct {
	Name       string   `toml:"Name"`
	Operations []string `toml:"Operations"`
}

type Config struct {
	Common  Common
	LogInfo LogInfo
	DB      DB
	Wallet  Wallet
	Server  Server
	Network Network
	Crypto  Crypto
	Mempool Mempool
	Cache   Cache
	Genesis Genesis
	Apps    []App
}

func NewConfig(filepath string) (*Config, error) {
	if filepath == "" {
		workDir, _ := os.Getwd()
		rootDir := utils.FindProjectRoot(workDir)
		filepath = path.Join(rootDir, "config", "config.toml")
	}

	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c := new(Config)
	if err := toml.NewDecoder(file).Decode(c); err != nil {
		return nil, err
	}
	c.sanitize()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default 설정 파일 없이 쓰는 기본값 (CLI 등)
func Default() *Config {
	c := new(Config)
	c.sanitize()
	return c
}

func (p *Config) sanitize() {
	if p.LogInfo.Path == "" {
		p.LogInfo.Path = "~/.loki-node/logs/loki-node"
	}
	if p.DB.Path == "" {
		p.DB.Path = "~/.loki-node/db"
	}
	if p.Wallet.Path == "" {
		p.Wallet.Path = "~/.loki-node/wallets"
	}
	p.LogInfo.Path = utils.ExpandHome(p.LogInfo.Path)
	p.DB.Path = utils.ExpandHome(p.DB.Path)
	p.Wallet.Path = utils.ExpandHome(p.Wallet.Path)

	if p.Server.RestPort <= 0 {
		p.Server.RestPort = 8000
	}
	if p.Common.Level == "" {
		p.Common.Level = "prod"
	}
	if p.Network.Tag == "" {
		p.Network.Tag = "lokichain"
	}
	if p.Network.Denom == "" {
		p.Network.Denom = "LOKI"
	}
	if p.Crypto.Hasher == "" {
		p.Crypto.Hasher = "sha256"
	}
	if p.Mempool.ReleaseLimit <= 0 {
		p.Mempool.ReleaseLimit = 100
	}
	if p.Cache.TxCacheSize <= 0 {
		p.Cache.TxCacheSize = 1024
	}
	if p.LogInfo.MaxAgeHour <= 0 {
		p.LogInfo.MaxAgeHour = 24 * 7
	}
	if p.LogInfo.RotateHour <= 0 {
		p.LogInfo.RotateHour = 24
	}
}

func (p *Config) validate() error {
	if err := prt.ValidateNetwork(p.Network.Tag); err != nil {
		return fmt.Errorf("invalid [Network] Tag: %w", err)
	}
	if len(p.Genesis.Addresses) != len(p.Genesis.Balances) {
		return fmt.Errorf("genesis address and balance count mismatch: %d != %d",
			len(p.Genesis.Addresses), len(p.Genesis.Balances))
	}
	for _, app := range p.Apps {
		if app.Name == "" {
			return fmt.Errorf("app name must not be empty")
		}
	}
	return nil
}

func (p *Config) GetLogInfoConfig() *LogInfo {
	return &p.LogInfo
}

// Routes 설정의 앱 목록을 app -> operations 맵으로 변환
func (p *Config) Routes() map[string][]string {
	routes := make(map[string][]string, len(p.Apps))
	for _, app := range p.Apps {
		routes[app.Name] = append(routes[app.Name], app.Operations...)
	}
	return routes
}
