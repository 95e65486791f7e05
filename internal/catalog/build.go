package catalog

import (
	"log/slog"

	"twitch/internal/logging"
	"twitch/internal/registry"
)

// Resolver turns an install directory into a launch descriptor.
type Resolver interface {
	Resolve(installDir string) (Launch, error)
}

// Build joins products with installs on the ASIN.
//
// A product with exactly one matching install takes that row's directory and
// installed flag. Zero or several matches leave the game not installed.
// Installed games get their launch descriptor from resolver; a resolution
// failure leaves only that game unresolved. Output follows product order and
// the first product wins when an ASIN repeats.
func Build(products []registry.Product, installs []registry.Install, resolver Resolver, logger *slog.Logger) []Game {
	logger = logging.NewComponentLogger(logger, "catalog")

	byASIN := make(map[string][]registry.Install, len(installs))
	for _, install := range installs {
		byASIN[install.ASIN] = append(byASIN[install.ASIN], install)
	}

	seen := make(map[string]struct{}, len(products))
	games := make([]Game, 0, len(products))
	for _, product := range products {
		if _, dup := seen[product.ASIN]; dup {
			logger.Debug("duplicate product dropped",
				logging.String(logging.FieldASIN, product.ASIN),
				logging.String(logging.FieldTitle, product.Title))
			continue
		}
		seen[product.ASIN] = struct{}{}

		game := Game{
			ASIN:     product.ASIN,
			Title:    product.Title,
			ImageURL: product.IconURL,
		}

		matches := byASIN[product.ASIN]
		switch len(matches) {
		case 0:
		case 1:
			game.Installed = matches[0].IsInstalled()
			game.InstallDirectory = matches[0].InstallDirectory
		default:
			logging.WarnWithContext(logger, "multiple install records for title", "install_ambiguous",
				logging.String(logging.FieldASIN, product.ASIN),
				logging.String(logging.FieldTitle, product.Title),
				logging.Int("install_records", len(matches)),
				logging.String(logging.FieldErrorHint, "repair or reinstall the title in the client"),
				logging.String(logging.FieldImpact, "title listed as not installed"),
			)
		}

		if game.Installed && resolver != nil {
			launch, err := resolver.Resolve(game.InstallDirectory)
			if err != nil {
				logging.WarnWithContext(logger, "launch manifest unresolved", "manifest_unresolved",
					logging.String(logging.FieldASIN, product.ASIN),
					logging.String(logging.FieldTitle, product.Title),
					logging.String(logging.FieldPath, game.InstallDirectory),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "verify the install in the client"),
					logging.String(logging.FieldImpact, "title cannot be launched"),
				)
			} else {
				game.Launch = launch
			}
		}

		games = append(games, game)
	}
	return games
}
