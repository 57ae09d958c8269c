package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/caselinehq/caseline/pkg/config"
)

var _ = Describe("Configer", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	newConfiger := func() *config.Configer {
		cfger, err := config.NewConfiger(dir)
		Expect(err).NotTo(HaveOccurred())
		return cfger
	}

	Describe("LoadConfig", func() {
		It("returns defaults when no config file exists", func() {
			cfg, err := newConfiger().LoadConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Version).To(Equal(config.CurrentV))
			Expect(cfg.Client.APITarget).To(Equal("http://localhost:8000"))
			Expect(cfg.Client.CSRFHeader).To(Equal("X-CSRFToken"))
			Expect(cfg.Assistant.Path).To(Equal("/ai/assist"))
		})

		It("loads values from config.toml", func() {
			content := `version = 0

[client]
api_target = "https://app.example.com"
csrf_token = "abc123"
`
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600)).To(Succeed())

			cfg, err := newConfiger().LoadConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Client.APITarget).To(Equal("https://app.example.com"))
			Expect(cfg.Client.CSRFToken).To(Equal("abc123"))
		})

		It("fills unset fields with defaults", func() {
			content := `[client]
api_target = "https://app.example.com"
`
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600)).To(Succeed())

			cfg, err := newConfiger().LoadConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Client.CSRFHeader).To(Equal("X-CSRFToken"))
			Expect(cfg.Assistant.Path).To(Equal("/ai/assist"))
		})
	})

	Describe("SaveConfig", func() {
		It("round-trips through the file", func() {
			cfger := newConfiger()

			cfg := config.NewDefaultConfig()
			cfg.Client.APITarget = "https://crm.internal"
			Expect(cfger.SaveConfig(cfg)).To(Succeed())

			loaded, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Client.APITarget).To(Equal("https://crm.internal"))
		})

		It("rejects a nil config", func() {
			Expect(newConfiger().SaveConfig(nil)).NotTo(Succeed())
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		It("sets and reads back a key", func() {
			cfger := newConfiger()

			Expect(cfger.SetConfigValue("client.csrf_token", "tok")).To(Succeed())

			got, err := cfger.GetConfigValue("client.csrf_token")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("tok"))
		})

		It("rejects unknown keys", func() {
			cfger := newConfiger()

			Expect(cfger.SetConfigValue("client.nope", "x")).NotTo(Succeed())

			_, err := cfger.GetConfigValue("client.nope")
			Expect(err).To(MatchError(ContainSubstring("unknown config key")))
		})
	})

	Describe("ParseConfigTOML", func() {
		It("rejects an unsupported version", func() {
			_, err := config.ParseConfigTOML([]byte("version = 99\n"))

			Expect(err).To(MatchError(ContainSubstring("unsupported config version")))
		})

		It("rejects malformed TOML", func() {
			_, err := config.ParseConfigTOML([]byte("not toml ==="))

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ValidConfigKeys", func() {
		It("lists every supported key", func() {
			keys := config.ValidConfigKeys()

			Expect(keys).To(ConsistOf(
				"client.api_target",
				"client.csrf_header",
				"client.csrf_token",
				"assistant.path",
			))
			Expect(config.IsValidConfigKey("client.api_target")).To(BeTrue())
			Expect(config.IsValidConfigKey("bogus")).To(BeFalse())
		})
	})
})
