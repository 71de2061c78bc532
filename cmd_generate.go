package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"seo_article_generator/export"
	"seo_article_generator/generator"
)

type generateFlags struct {
	title        string
	mainKeywords string
	subKeywords  string
	purpose      string
	length       string
	audience     string
	tone         string
	apiKey       string
	format       string
	outDir       string
	render       bool
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the wizard once from flags and write the exported article",
	Example: `  seo-article-generator generate --title "Best Coffee" --main-keywords "coffee, brewing" \
    --purpose "educate readers" --audience "home baristas" --tone casual --out ./articles`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genFlags.title, "title", "", "article title")
	f.StringVar(&genFlags.mainKeywords, "main-keywords", "", "main SEO keywords, comma separated")
	f.StringVar(&genFlags.subKeywords, "sub-keywords", "", "supporting keywords, comma separated")
	f.StringVar(&genFlags.purpose, "purpose", "", "goal of the article")
	f.StringVar(&genFlags.length, "length", "standard", "short, standard or detailed")
	f.StringVar(&genFlags.audience, "audience", "", "target readers")
	f.StringVar(&genFlags.tone, "tone", "casual", "casual, formal, expert, educational or persuasive")
	f.StringVar(&genFlags.apiKey, "api-key", "", "API credential (defaults to the env var named by llm.api_key_env)")
	f.StringVar(&genFlags.format, "format", "md", "export format: md or txt")
	f.StringVar(&genFlags.outDir, "out", ".", "directory for the exported file")
	f.BoolVar(&genFlags.render, "render", false, "print a rendered preview to the terminal")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(genFlags.format)
	if err != nil {
		return err
	}

	sess := generator.NewSession("cli", client)
	credential := genFlags.apiKey
	if credential == "" {
		credential = cfg.Credential()
	}
	if cfg.LLM.Provider == "mock" && credential == "" {
		credential = "mock"
	}
	sess.SetCredential(credential)

	if err := sess.SubmitBasicInfo(genFlags.title, genFlags.mainKeywords, genFlags.subKeywords); err != nil {
		return err
	}
	if err := sess.SubmitContentDetails(genFlags.purpose, genFlags.length, genFlags.audience); err != nil {
		return err
	}
	logger.Infof("generating %q, this can take a minute or two", genFlags.title)
	article, err := sess.SubmitStylePreferences(cmd.Context(), genFlags.tone)
	if errors.Is(err, generator.ErrMissingCredential) {
		return fmt.Errorf("%w: pass --api-key or set %s", err, cfg.LLM.APIKeyEnv)
	}
	if err != nil {
		return err
	}

	file, err := export.Export(article, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(genFlags.outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(genFlags.outDir, safeFileName(file.Name))
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return err
	}
	logger.WithField("path", path).Info("article exported")

	if genFlags.render {
		out, err := export.RenderTerminal(article, 100, "")
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// safeFileName keeps the export name usable as a single path element.
func safeFileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "\x00", "").Replace(name)
}
