package recording

import "fmt"

// CommandType identifies the type of a recorded device call.
type CommandType uint8

const (
	// Creation commands
	CmdCreateBuffer      CommandType = iota // Create a buffer
	CmdCreateTexture                        // Create a texture
	CmdCreateTextureView                    // Create a texture view
	CmdCreateSampler                        // Create a sampler state
	CmdCreatePixelShader                    // Create a pixel shader

	// Destruction commands
	CmdDestroyBuffer      // Destroy a buffer
	CmdDestroyTexture     // Destroy a texture
	CmdDestroyTextureView // Destroy a texture view
	CmdDestroySampler     // Destroy a sampler state
	CmdDestroyPixelShader // Destroy a pixel shader

	// Binding commands
	CmdSetBlendState           // Bind blend state
	CmdSetPixelShader          // Bind pixel shader
	CmdSetPixelTextures        // Bind texture views
	CmdSetPixelSamplers        // Bind samplers
	CmdSetPixelConstantBuffers // Bind constant buffers
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateBuffer:            "CreateBuffer",
	CmdCreateTexture:           "CreateTexture",
	CmdCreateTextureView:       "CreateTextureView",
	CmdCreateSampler:           "CreateSampler",
	CmdCreatePixelShader:       "CreatePixelShader",
	CmdDestroyBuffer:           "DestroyBuffer",
	CmdDestroyTexture:          "DestroyTexture",
	CmdDestroyTextureView:      "DestroyTextureView",
	CmdDestroySampler:          "DestroySampler",
	CmdDestroyPixelShader:      "DestroyPixelShader",
	CmdSetBlendState:           "SetBlendState",
	CmdSetPixelShader:          "SetPixelShader",
	CmdSetPixelTextures:        "SetPixelTextures",
	CmdSetPixelSamplers:        "SetPixelSamplers",
	CmdSetPixelConstantBuffers: "SetPixelConstantBuffers",
}

// String returns a human-readable name for the command type.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return fmt.Sprintf("CommandType(%d)", t)
}

// Command is a single recorded device call.
//
// For creation and destruction commands ID is the resource involved. For
// binding commands Slot is the first slot and IDs lists the bound
// resources in slot order.
type Command struct {
	Type CommandType
	ID   uint64
	Slot uint32
	IDs  []uint64
}

// String returns a compact description of the command.
func (c Command) String() string {
	switch {
	case c.IDs != nil:
		return fmt.Sprintf("%s(slot=%d, ids=%v)", c.Type, c.Slot, c.IDs)
	case c.ID != 0:
		return fmt.Sprintf("%s(%d)", c.Type, c.ID)
	default:
		return c.Type.String()
	}
}
