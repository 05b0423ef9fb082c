package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Warehouse WarehouseConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP propio (la consola habla con este puerto).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WarehouseConfig configuración del servicio remoto de bodega/inventario.
// El servicio es la autoridad sobre stock, lotes, seriales y ubicaciones;
// este backend solo compone y envía solicitudes de movimiento.
type WarehouseConfig struct {
	BaseURL        string        // ej. https://wms.interno:8443/api/v1
	Timeout        time.Duration // timeout por petición saliente
	ServiceToken   string        // token de servicio (header X-Service-Token); vacío = sin header
	VoucherEnabled bool          // habilita el comprobante PDF tras un envío exitoso
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, WMS_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "erp-front-console"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Warehouse: WarehouseConfig{
			BaseURL:        getString(v, "WMS_BASE_URL", "http://localhost:9090/api/v1"),
			Timeout:        time.Duration(getInt(v, "WMS_TIMEOUT_SECONDS", 15)) * time.Second,
			ServiceToken:   getString(v, "WMS_SERVICE_TOKEN", ""),
			VoucherEnabled: getBool(v, "VOUCHER_ENABLED", true),
		},
	}

	if cfg.Warehouse.BaseURL == "" {
		return nil, fmt.Errorf("configuración inválida: WMS_BASE_URL es obligatorio")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
