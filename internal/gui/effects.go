// Per-effect parameter cards generated from node metadata
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"video-fx-engine/internal/effects"
	"video-fx-engine/internal/engine"
)

// EffectsPanel shows one card per pipeline node. Widgets are generated
// from the node's parameter metadata and push changes straight into the
// running engine.
type EffectsPanel struct {
	engine *engine.Engine
	logger *logrus.Logger

	box *fyne.Container
}

func NewEffectsPanel(eng *engine.Engine, logger *logrus.Logger) *EffectsPanel {
	panel := &EffectsPanel{
		engine: eng,
		logger: logger,
	}

	panel.initializeUI()
	return panel
}

func (ep *EffectsPanel) initializeUI() {
	ep.box = container.NewVBox()
	for i, node := range ep.engine.Pipeline().Nodes() {
		ep.box.Add(ep.buildNodeCard(i, node))
	}
}

func (ep *EffectsPanel) buildNodeCard(nodeIndex int, node effects.Node) fyne.CanvasObject {
	content := container.NewVBox()
	for _, param := range node.GetParameterInfo() {
		content.Add(ep.buildParameterWidget(nodeIndex, param))
	}
	return widget.NewCard(node.Name(), node.Description(), content)
}

func (ep *EffectsPanel) buildParameterWidget(nodeIndex int, param effects.ParameterInfo) fyne.CanvasObject {
	switch param.Type {
	case "int":
		slider := widget.NewSlider(param.Min.(float64), param.Max.(float64))
		slider.SetValue(param.Default.(float64))
		slider.Step = 1
		valueLabel := widget.NewLabel(fmt.Sprintf("%.0f", param.Default.(float64)))

		slider.OnChanged = func(value float64) {
			valueLabel.SetText(fmt.Sprintf("%.0f", value))
			ep.setParameter(nodeIndex, param.Name, int(value))
		}
		return sliderRow(param, slider, valueLabel)

	case "float":
		slider := widget.NewSlider(param.Min.(float64), param.Max.(float64))
		slider.SetValue(param.Default.(float64))
		slider.Step = 0.1
		valueLabel := widget.NewLabel(fmt.Sprintf("%.2f", param.Default.(float64)))

		slider.OnChanged = func(value float64) {
			valueLabel.SetText(fmt.Sprintf("%.2f", value))
			ep.setParameter(nodeIndex, param.Name, value)
		}
		return sliderRow(param, slider, valueLabel)

	case "bool":
		check := widget.NewCheck(param.Description, func(checked bool) {
			ep.setParameter(nodeIndex, param.Name, checked)
		})
		if def, ok := param.Default.(bool); ok {
			check.SetChecked(def)
		}
		return check

	default:
		return widget.NewLabel(fmt.Sprintf("unsupported parameter type %q", param.Type))
	}
}

func sliderRow(param effects.ParameterInfo, slider *widget.Slider, valueLabel *widget.Label) fyne.CanvasObject {
	name := widget.NewLabel(fmt.Sprintf("%s:", param.Name))
	desc := widget.NewLabel(param.Description)
	desc.TextStyle = fyne.TextStyle{Italic: true}

	return container.NewVBox(
		name,
		container.NewBorder(nil, nil, nil, valueLabel, slider),
		desc,
	)
}

func (ep *EffectsPanel) setParameter(nodeIndex int, name string, value interface{}) {
	if err := ep.engine.SetParameter(nodeIndex, name, value); err != nil {
		ep.logger.WithError(err).WithFields(logrus.Fields{
			"node":      nodeIndex,
			"parameter": name,
		}).Warn("Parameter update rejected")
	}
}

func (ep *EffectsPanel) GetContainer() fyne.CanvasObject {
	return ep.box
}
