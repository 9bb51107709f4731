package db

import "fmt"

type DBConfig struct {
	URI             string
	DBNamePrefix    string
	Timeout         int
	NoCursorTimeout bool
	MaxPoolSize     uint64
	IdleConnTimeout int
	InstanceIDs     []string
}

type DBConfigYaml struct {
	ConnectionStr      string `yaml:"connection_str"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	ConnectionPrefix   string `yaml:"connection_prefix"`
	Timeout            int    `yaml:"timeout"`
	IdleConnTimeout    int    `yaml:"idle_conn_timeout"`
	MaxPoolSize        int    `yaml:"max_pool_size"`
	UseNoCursorTimeout bool   `yaml:"use_no_cursor_timeout"`
	DBNamePrefix       string `yaml:"db_name_prefix"`
}

// DBConfigFromYamlObj builds the connection config from its yaml
// representation. Credentials may have been overridden from environment
// variables by the service init before this is called.
func DBConfigFromYamlObj(yamlObj DBConfigYaml, instanceIDs []string) DBConfig {
	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	if yamlObj.Username == "" && yamlObj.Password == "" {
		uri = fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}

	return DBConfig{
		URI:             uri,
		DBNamePrefix:    yamlObj.DBNamePrefix,
		Timeout:         yamlObj.Timeout,
		NoCursorTimeout: yamlObj.UseNoCursorTimeout,
		MaxPoolSize:     uint64(yamlObj.MaxPoolSize),
		IdleConnTimeout: yamlObj.IdleConnTimeout,
		InstanceIDs:     instanceIDs,
	}
}
