package config

type AppConfig struct {
	Server      ServerConfig
	Coordinator CoordinatorConfig
	Log         LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	coordCfg, err := LoadCoordinator()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:      serverCfg,
		Coordinator: coordCfg,
		Log:         logCfg,
	}, nil
}
