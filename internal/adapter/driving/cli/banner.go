package cli

import (
	"fmt"

	"github.com/diillson/datamart-reports/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
     ____          __                             __     ____                        __
    / __ \____ _  / /_ ____ _ ____ ___   ____ _ _____/ /_   / __ \ ___   ____   ____   _____/ /_ _____
   / / / / __ '/ / __// __ '// __ '__ \ / __ '// ___/ __/  / /_/ // _ \ / __ \ / __ \ / ___/ __// ___/
  / /_/ / /_/ / / /_ / /_/ // / / / / // /_/ // /  / /_   / _, _//  __// /_/ // /_/ // /  / /_ (__  )
 /_____/\__,_/  \__/ \__,_//_/ /_/ /_/ \__,_//_/   \__/  /_/ |_| \___// .___/ \____//_/   \__//____/
                                                                    /_/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Datamart Reports CLI (v%s)", formattedVersion)))
}
